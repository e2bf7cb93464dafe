package reporter

import (
	"fmt"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/five82/mediaqc/internal/qc"
	"github.com/five82/mediaqc/internal/util"
)

// TerminalReporter outputs human-friendly text to the terminal.
type TerminalReporter struct {
	mu       sync.Mutex
	progress *progressbar.ProgressBar
	verbose  bool
	cyan     *color.Color
	green    *color.Color
	yellow   *color.Color
	red      *color.Color
	magenta  *color.Color
	bold     *color.Color
}

// NewTerminalReporter creates a new terminal reporter. Color output is
// disabled automatically when stdout is not a terminal.
func NewTerminalReporter(verbose bool) *TerminalReporter {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
	return &TerminalReporter{
		verbose: verbose,
		cyan:    color.New(color.FgCyan, color.Bold),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow, color.Bold),
		red:     color.New(color.FgRed, color.Bold),
		magenta: color.New(color.FgMagenta),
		bold:    color.New(color.Bold),
	}
}

func (r *TerminalReporter) finishProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
}

func (r *TerminalReporter) BatchStarted(info BatchStartInfo) {
	fmt.Println()
	_, _ = r.cyan.Println("ANALYSIS")
	fmt.Printf("  %s\n", r.bold.Sprintf("%d file(s) queued", info.TotalFiles))
	for i, name := range info.FileList {
		fmt.Printf("  %d. %s\n", i+1, name)
	}

	if info.TotalFiles > 1 {
		r.mu.Lock()
		r.progress = progressbar.NewOptions(
			info.TotalFiles,
			progressbar.OptionSetDescription(""),
			progressbar.OptionSetWidth(40),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionShowDescriptionAtLineEnd(),
			progressbar.OptionSetElapsedTime(false),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "Analyzing [",
				BarEnd:        "]",
			}),
		)
		r.mu.Unlock()
	}
}

func (r *TerminalReporter) FileProgress(ctx FileProgressContext) {
	fmt.Printf("  %s %s (%d/%d)\n", r.magenta.Sprint("›"), ctx.FileName, ctx.CurrentFile, ctx.TotalFiles)
}

func (r *TerminalReporter) FileAnalyzed(summary FileSummary) {
	r.mu.Lock()
	if r.progress != nil {
		_ = r.progress.Add(1)
	}
	r.mu.Unlock()

	fmt.Println()
	_, _ = r.cyan.Println(summary.FileName)
	fmt.Printf("  %s %s\n", r.bold.Sprint("Status:"), r.statusText(summary.Status))
	if summary.SizeBytes > 0 {
		fmt.Printf("  %s %s\n", r.bold.Sprint("Size:"), util.FormatBytes(summary.SizeBytes))
	}
	fmt.Printf("  %s %s errors, %s warnings\n",
		r.bold.Sprint("Issues:"),
		r.red.Sprint(summary.ErrorCount),
		r.yellow.Sprint(summary.WarningCount))
	for _, issue := range summary.Issues {
		fmt.Printf("  [%s] %s: %s\n", r.statusText(issue.Severity), issue.Description, issue.Details)
	}
	if summary.Summary != "" {
		fmt.Printf("  %s %s\n", r.bold.Sprint("Summary:"), summary.Summary)
	}
}

func (r *TerminalReporter) statusText(s qc.Severity) string {
	switch s {
	case qc.SeverityError:
		return r.red.Sprint(string(s))
	case qc.SeverityWarning:
		return r.yellow.Sprint(string(s))
	default:
		return r.green.Sprint(string(s))
	}
}

func (r *TerminalReporter) Warning(message string) {
	_, _ = r.yellow.Fprintf(os.Stderr, "WARNING: %s\n", message)
}

func (r *TerminalReporter) Error(err ReporterError) {
	_, _ = fmt.Fprintln(os.Stderr)
	_, _ = r.red.Fprintf(os.Stderr, "ERROR %s\n", err.Title)
	_, _ = fmt.Fprintf(os.Stderr, "  %s\n", err.Message)
	if err.Context != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Context: %s\n", err.Context)
	}
	if err.Suggestion != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Suggestion: %s\n", err.Suggestion)
	}
}

func (r *TerminalReporter) OperationComplete(message string) {
	r.finishProgress()
	fmt.Printf("%s %s\n", r.green.Sprint("✓"), message)
}

func (r *TerminalReporter) BatchComplete(summary BatchSummary) {
	r.finishProgress()

	fmt.Println()
	_, _ = r.cyan.Println("BATCH SUMMARY")
	fmt.Printf("  %s\n", r.bold.Sprintf("%d file(s) analyzed", summary.TotalFiles))
	fmt.Printf("  Status: %s passed, %s with warnings, %s with errors\n",
		r.green.Sprint(summary.PassedFiles),
		r.yellow.Sprint(summary.WarningFiles),
		r.red.Sprint(summary.ErrorFiles))
	fmt.Printf("  Issues: %d total\n", summary.TotalIssues)
	fmt.Printf("  Time: %.1fs\n", summary.TotalDuration.Seconds())
}

func (r *TerminalReporter) Verbose(message string) {
	if !r.verbose {
		return
	}
	fmt.Printf("  %s\n", color.New(color.Faint).Sprint(message))
}
