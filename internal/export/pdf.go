package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/five82/mediaqc/internal/analysis"
	"github.com/five82/mediaqc/internal/errors"
	"github.com/five82/mediaqc/internal/media"
	"github.com/five82/mediaqc/internal/qc"
	"github.com/five82/mediaqc/internal/util"
)

// toPDF renders the analysis result as a printable report. The core fonts
// only cover Latin text, so anything outside that range is replaced rather
// than failing the export.
func toPDF(r *analysis.Result) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetAutoPageBreak(true, 14)
	pdf.SetTitle("MediaQC Pro Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, "MediaQC Pro Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 6, fmt.Sprintf("File: %s", pdfText(r.FileName)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Analysis Date: %s", displayTimestamp(r.Timestamp)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Status: %s", r.Status()), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdfSection(pdf, "QC Summary")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(20, 20, 20)
	pdf.MultiCell(0, 5, pdfText(r.Summary), "", "L", false)
	pdf.Ln(1)
	if len(r.Issues) == 0 {
		pdf.SetTextColor(90, 90, 90)
		pdf.MultiCell(0, 5, "No issues found.", "", "L", false)
	} else {
		for _, issue := range r.Issues {
			pdf.SetFont("Helvetica", "B", 10)
			if issue.Severity == qc.SeverityError {
				pdf.SetTextColor(170, 30, 30)
			} else {
				pdf.SetTextColor(160, 110, 0)
			}
			pdf.MultiCell(0, 5, fmt.Sprintf("[%s] %s", issue.Severity, pdfText(issue.Description)), "", "L", false)
			pdf.SetFont("Helvetica", "", 9)
			pdf.SetTextColor(40, 40, 40)
			pdf.MultiCell(0, 4.5, pdfText(issue.Details), "", "L", false)
			pdf.Ln(1)
		}
	}
	pdf.Ln(2)

	if r.MediaInfo != nil {
		pdfTrack(pdf, "General", r.MediaInfo.General)
		pdfTrack(pdf, "Video", r.MediaInfo.Video)
		for i, track := range r.MediaInfo.Audio {
			pdfTrack(pdf, fmt.Sprintf("Audio Stream %d", i+1), track)
		}
		for i, track := range r.MediaInfo.Subtitles {
			pdfTrack(pdf, fmt.Sprintf("Subtitle Stream %d", i+1), track)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.NewExportError("rendering PDF report", err)
	}
	return buf.Bytes(), nil
}

func pdfSection(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 7, title, "", 1, "L", false, 0, "")
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(pdf.GetX(), pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(2)
}

func pdfTrack(pdf *gofpdf.Fpdf, title string, track *media.Track) {
	if track == nil {
		return
	}
	pdfSection(pdf, title)
	for _, key := range track.Keys() {
		v, _ := track.Get(key)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(30, 30, 30)
		pdf.CellFormat(48, 5.2, pdfText(util.HumanizeKey(key))+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(20, 20, 20)
		pdf.MultiCell(0, 5.2, pdfText(v.String()), "", "L", false)
	}
	pdf.Ln(2)
}

// pdfText flattens whitespace and replaces characters the core fonts cannot
// encode.
func pdfText(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	s = strings.TrimSpace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 32 && r <= 126 {
			b.WriteRune(r)
		} else {
			b.WriteRune('?')
		}
	}
	return b.String()
}
