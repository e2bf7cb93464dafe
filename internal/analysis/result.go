// Package analysis binds the per-file QC pipeline together: metadata
// extraction, rule evaluation, narrative summary, and the immutable result
// record produced for each analyzed file.
package analysis

import (
	"time"

	"github.com/five82/mediaqc/internal/media"
	"github.com/five82/mediaqc/internal/qc"
)

// Result is the immutable record of one file's full analysis. The ID is
// derived from the filename and the analysis timestamp and is unique within
// a history log. Field order is the serialization order for exports.
type Result struct {
	ID        string      `json:"id"`
	FileName  string      `json:"fileName"`
	Timestamp string      `json:"timestamp"`
	MediaInfo *media.Info `json:"mediaInfo"`
	Issues    []qc.Issue  `json:"qcIssues"`
	Summary   string      `json:"qcSummary"`
}

// newResult aggregates the pipeline outputs into a Result stamped with the
// current UTC time.
func newResult(fileName string, info *media.Info, issues []qc.Issue, summaryText string) *Result {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	return &Result{
		ID:        fileName + "-" + timestamp,
		FileName:  fileName,
		Timestamp: timestamp,
		MediaInfo: info,
		Issues:    issues,
		Summary:   summaryText,
	}
}

// Status derives the aggregate severity of the result's issue list.
func (r *Result) Status() qc.Severity {
	return qc.OverallStatus(r.Issues)
}

// CountBySeverity returns the number of error and warning issues.
func (r *Result) CountBySeverity() (errors, warnings int) {
	for _, issue := range r.Issues {
		switch issue.Severity {
		case qc.SeverityError:
			errors++
		case qc.SeverityWarning:
			warnings++
		}
	}
	return errors, warnings
}
