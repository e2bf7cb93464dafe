package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// JSONReporter outputs NDJSON events, one object per line, for consumption
// by wrapping tools.
type JSONReporter struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONReporter creates a new JSON reporter that writes to stdout.
func NewJSONReporter() *JSONReporter {
	return &JSONReporter{writer: os.Stdout}
}

// NewJSONReporterWithWriter creates a JSON reporter with a custom writer.
func NewJSONReporterWithWriter(w io.Writer) *JSONReporter {
	return &JSONReporter{writer: w}
}

func (r *JSONReporter) timestamp() int64 {
	return time.Now().Unix()
}

func (r *JSONReporter) write(v any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintln(r.writer, string(data))
}

func (r *JSONReporter) BatchStarted(info BatchStartInfo) {
	r.write(map[string]any{
		"type":        "batch_started",
		"run_id":      info.RunID,
		"total_files": info.TotalFiles,
		"file_list":   info.FileList,
		"timestamp":   r.timestamp(),
	})
}

func (r *JSONReporter) FileProgress(ctx FileProgressContext) {
	r.write(map[string]any{
		"type":         "file_progress",
		"current_file": ctx.CurrentFile,
		"total_files":  ctx.TotalFiles,
		"file_name":    ctx.FileName,
		"timestamp":    r.timestamp(),
	})
}

func (r *JSONReporter) FileAnalyzed(summary FileSummary) {
	r.write(map[string]any{
		"type":          "file_analyzed",
		"file_name":     summary.FileName,
		"status":        summary.Status,
		"size_bytes":    summary.SizeBytes,
		"error_count":   summary.ErrorCount,
		"warning_count": summary.WarningCount,
		"issues":        summary.Issues,
		"summary":       summary.Summary,
		"timestamp":     r.timestamp(),
	})
}

func (r *JSONReporter) Warning(message string) {
	r.write(map[string]any{
		"type":      "warning",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) Error(err ReporterError) {
	r.write(map[string]any{
		"type":       "error",
		"title":      err.Title,
		"message":    err.Message,
		"context":    err.Context,
		"suggestion": err.Suggestion,
		"timestamp":  r.timestamp(),
	})
}

func (r *JSONReporter) OperationComplete(message string) {
	r.write(map[string]any{
		"type":      "operation_complete",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) BatchComplete(summary BatchSummary) {
	r.write(map[string]any{
		"type":             "batch_complete",
		"total_files":      summary.TotalFiles,
		"passed_files":     summary.PassedFiles,
		"warning_files":    summary.WarningFiles,
		"error_files":      summary.ErrorFiles,
		"total_issues":     summary.TotalIssues,
		"duration_seconds": int64(summary.TotalDuration.Seconds()),
		"timestamp":        r.timestamp(),
	})
}

func (r *JSONReporter) Verbose(message string) {
	r.write(map[string]any{
		"type":      "verbose",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}
