// Package export serializes analysis results into downloadable report
// artifacts in several formats.
package export

import (
	"fmt"
	"strings"

	"github.com/five82/mediaqc/internal/util"
)

// Format identifies an export serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
	FormatCSV  Format = "csv"
	FormatText Format = "txt"
	FormatPDF  Format = "pdf"
)

// Formats lists all supported formats in presentation order.
func Formats() []Format {
	return []Format{FormatJSON, FormatXML, FormatCSV, FormatText, FormatPDF}
}

// ParseFormat converts a user-supplied format name into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "xml":
		return FormatXML, nil
	case "csv":
		return FormatCSV, nil
	case "txt", "text":
		return FormatText, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported export format %q, valid options: json, xml, csv, txt, pdf", s)
	}
}

// MediaType returns the MIME type for the format.
func (f Format) MediaType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatXML:
		return "application/xml"
	case FormatCSV:
		return "text/csv"
	case FormatText:
		return "text/plain"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// ReportFileName derives the artifact filename for a source media file. Only
// the final extension is stripped before the report suffix is added.
func ReportFileName(sourceFileName string, format Format) string {
	return util.GetFileStem(sourceFileName) + "_report." + string(format)
}
