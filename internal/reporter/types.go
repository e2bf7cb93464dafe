// Package reporter provides progress reporting interfaces and implementations.
package reporter

import (
	"time"

	"github.com/five82/mediaqc/internal/qc"
)

// BatchStartInfo contains batch start metadata.
type BatchStartInfo struct {
	RunID      string
	TotalFiles int
	FileList   []string
}

// FileProgressContext contains current file position within a batch.
type FileProgressContext struct {
	CurrentFile int
	TotalFiles  int
	FileName    string
}

// FileSummary contains one file's analysis outcome.
type FileSummary struct {
	FileName     string
	Status       qc.Severity
	SizeBytes    uint64
	ErrorCount   int
	WarningCount int
	Issues       []qc.Issue
	Summary      string
}

// ReporterError contains error information.
type ReporterError struct {
	Title      string
	Message    string
	Context    string
	Suggestion string
}

// BatchSummary contains batch completion information.
type BatchSummary struct {
	TotalFiles    int
	PassedFiles   int
	WarningFiles  int
	ErrorFiles    int
	TotalIssues   int
	TotalDuration time.Duration
}
