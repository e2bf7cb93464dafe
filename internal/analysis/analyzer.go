package analysis

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/five82/mediaqc/internal/errors"
	"github.com/five82/mediaqc/internal/logging"
	"github.com/five82/mediaqc/internal/probe"
	"github.com/five82/mediaqc/internal/qc"
	"github.com/five82/mediaqc/internal/reporter"
	"github.com/five82/mediaqc/internal/summary"
	"github.com/five82/mediaqc/internal/util"
)

// Analyzer runs the full QC pipeline for media files: metadata extraction,
// rule evaluation, and narrative summary generation.
type Analyzer struct {
	source     probe.Source
	summarizer summary.Summarizer
	thresholds qc.Thresholds
	logger     *logging.Logger
}

// New creates an Analyzer. A nil logger falls back to the global logger.
func New(source probe.Source, summarizer summary.Summarizer, thresholds qc.Thresholds, logger *logging.Logger) *Analyzer {
	if logger == nil {
		logger = logging.Global()
	}
	return &Analyzer{
		source:     source,
		summarizer: summarizer,
		thresholds: thresholds,
		logger:     logger,
	}
}

// AnalyzeFile runs the pipeline for a single file and returns its result.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewCancelledError()
	}

	fileName := util.GetFilename(path)
	a.logger.Debug("extracting metadata", "file", fileName)

	info, err := a.source.Extract(ctx, path)
	if err != nil {
		return nil, err
	}

	issues := qc.EvaluateWithThresholds(info, a.thresholds)
	summaryText := a.summarizer.Summarize(ctx, issues)

	result := newResult(fileName, info, issues, summaryText)
	a.logger.Debug("analysis complete",
		"file", fileName,
		"status", string(result.Status()),
		"issues", len(issues))
	return result, nil
}

// AnalyzeBatch analyzes all paths concurrently and returns results in input
// order. The batch fails as a whole on the first file error: remaining work
// is cancelled and no partial results are returned.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, paths []string, rep reporter.Reporter) ([]*Result, error) {
	if rep == nil {
		rep = reporter.NullReporter{}
	}
	if len(paths) == 0 {
		return nil, &errors.CoreError{Kind: errors.KindNoFilesFound, Message: "no files to analyze"}
	}

	runID := uuid.NewString()
	started := time.Now()

	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = util.GetFilename(p)
	}
	rep.BatchStarted(reporter.BatchStartInfo{
		RunID:      runID,
		TotalFiles: len(paths),
		FileList:   names,
	})
	sys := util.GetSystemInfo()
	a.logger.Info("batch started",
		"run_id", runID,
		"files", len(paths),
		"host", sys.Hostname,
		"cpus", sys.NumCPU,
		"platform", sys.OS+"/"+sys.Arch)

	batchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]*Result, len(paths))
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		repMu    sync.Mutex
		firstErr error
	)

	for i, path := range paths {
		wg.Add(1)
		go func(idx int, path string) {
			defer wg.Done()

			result, err := a.AnalyzeFile(batchCtx, path)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
					cancel()
				}
				mu.Unlock()
				return
			}

			mu.Lock()
			results[idx] = result
			mu.Unlock()

			size, _ := util.GetFileSize(path)
			errCount, warnCount := result.CountBySeverity()

			// The progress line and the file's summary are emitted as one
			// unit so concurrent files do not interleave between them.
			repMu.Lock()
			rep.FileProgress(reporter.FileProgressContext{
				CurrentFile: idx + 1,
				TotalFiles:  len(paths),
				FileName:    names[idx],
			})
			rep.FileAnalyzed(reporter.FileSummary{
				FileName:     result.FileName,
				Status:       result.Status(),
				SizeBytes:    size,
				ErrorCount:   errCount,
				WarningCount: warnCount,
				Issues:       result.Issues,
				Summary:      result.Summary,
			})
			repMu.Unlock()
		}(i, path)
	}
	wg.Wait()

	if firstErr != nil {
		a.logger.Error("batch failed", "run_id", runID, "error", firstErr)
		return nil, firstErr
	}

	batch := reporter.BatchSummary{
		TotalFiles:    len(results),
		TotalDuration: time.Since(started),
	}
	for _, r := range results {
		switch r.Status() {
		case qc.SeverityError:
			batch.ErrorFiles++
		case qc.SeverityWarning:
			batch.WarningFiles++
		default:
			batch.PassedFiles++
		}
		batch.TotalIssues += len(r.Issues)
	}
	rep.BatchComplete(batch)
	a.logger.Info("batch complete",
		"run_id", runID,
		"passed", batch.PassedFiles,
		"warnings", batch.WarningFiles,
		"errors", batch.ErrorFiles)

	return results, nil
}
