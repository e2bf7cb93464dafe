// Package qc implements the quality-control rule engine: a fixed, ordered
// set of independent rules evaluated over normalized media metadata.
package qc

// Severity classifies a QC issue.
type Severity string

const (
	SeverityPass    Severity = "Pass"
	SeverityWarning Severity = "Warning"
	SeverityError   Severity = "Error"
)

// Issue is one rule violation. Issues are created only by the rule engine
// and are immutable thereafter. IDs are stable within a single evaluation
// run and are used for keying, not globally unique across files.
type Issue struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Details     string   `json:"details"`
	Severity    Severity `json:"severity"`
}

// OverallStatus derives the aggregate status of an issue list: Error if any
// issue is an Error, else Warning if any is a Warning, else Pass. Rules
// never emit Pass issues; Pass exists only as this derived aggregate.
func OverallStatus(issues []Issue) Severity {
	status := SeverityPass
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			return SeverityError
		case SeverityWarning:
			status = SeverityWarning
		}
	}
	return status
}
