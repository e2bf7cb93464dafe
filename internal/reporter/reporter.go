package reporter

// Reporter defines the interface for progress reporting.
type Reporter interface {
	BatchStarted(info BatchStartInfo)
	FileProgress(context FileProgressContext)
	FileAnalyzed(summary FileSummary)
	Warning(message string)
	Error(err ReporterError)
	OperationComplete(message string)
	BatchComplete(summary BatchSummary)
	Verbose(message string)
}

// NullReporter is a no-op reporter that discards all updates.
type NullReporter struct{}

func (NullReporter) BatchStarted(BatchStartInfo)      {}
func (NullReporter) FileProgress(FileProgressContext) {}
func (NullReporter) FileAnalyzed(FileSummary)         {}
func (NullReporter) Warning(string)                   {}
func (NullReporter) Error(ReporterError)              {}
func (NullReporter) OperationComplete(string)         {}
func (NullReporter) BatchComplete(BatchSummary)       {}
func (NullReporter) Verbose(string)                   {}
