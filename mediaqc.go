// Package mediaqc provides a Go library for media quality-control analysis.
//
// MediaQC inspects media files, evaluates a set of QC rules against their
// metadata, and produces reports in several formats. Metadata currently
// comes from a deterministic mock probe behind the Source interface, so the
// pipeline can run without external tooling.
//
// Basic usage:
//
//	client, err := mediaqc.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.Analyze(ctx, "movie.mkv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("%s: %s (%d issues)\n",
//	    result.FileName, result.Status(), len(result.Issues))
package mediaqc

import (
	"context"
	"time"

	"github.com/five82/mediaqc/internal/analysis"
	"github.com/five82/mediaqc/internal/compare"
	"github.com/five82/mediaqc/internal/discovery"
	"github.com/five82/mediaqc/internal/export"
	"github.com/five82/mediaqc/internal/logging"
	"github.com/five82/mediaqc/internal/probe"
	"github.com/five82/mediaqc/internal/qc"
	"github.com/five82/mediaqc/internal/reporter"
	"github.com/five82/mediaqc/internal/summary"
)

// Re-export core result types.
type (
	Result    = analysis.Result
	Issue     = qc.Issue
	Severity  = qc.Severity
	Reporter  = reporter.Reporter
	Source    = probe.Source
	Artifact  = export.Artifact
	Format    = export.Format
	EncodeSet = compare.EncodeSet
)

const (
	SeverityPass    = qc.SeverityPass
	SeverityWarning = qc.SeverityWarning
	SeverityError   = qc.SeverityError
)

const (
	FormatJSON = export.FormatJSON
	FormatXML  = export.FormatXML
	FormatCSV  = export.FormatCSV
	FormatText = export.FormatText
	FormatPDF  = export.FormatPDF
)

// ParseFormat converts a format string to a Format value.
// Valid values are "json", "xml", "csv", "txt", and "pdf" (case-insensitive).
func ParseFormat(s string) (Format, error) {
	return export.ParseFormat(s)
}

// Client is the main entry point for media analysis.
type Client struct {
	source     probe.Source
	summarizer summary.Summarizer
	thresholds qc.Thresholds
	logger     *logging.Logger
}

// Option configures the client.
type Option func(*Client) error

// New creates a new Client with the given options. Without options the
// client uses the mock probe, built-in thresholds, and no remote summary
// service.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		source:     probe.NewMockSource(),
		summarizer: summary.NewService(summary.Settings{}),
		thresholds: qc.DefaultThresholds(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// WithSource replaces the metadata source.
func WithSource(source probe.Source) Option {
	return func(c *Client) error {
		c.source = source
		return nil
	}
}

// WithProbeDelay adds simulated latency to the mock probe.
func WithProbeDelay(delay time.Duration) Option {
	return func(c *Client) error {
		c.source = &probe.MockSource{Delay: delay}
		return nil
	}
}

// WithSummaryService enables the remote narrative summary service.
func WithSummaryService(endpoint, token string, timeout time.Duration, retries int) Option {
	return func(c *Client) error {
		c.summarizer = summary.NewService(summary.Settings{
			Endpoint: endpoint,
			Token:    token,
			Timeout:  timeout,
			Retries:  retries,
		})
		return nil
	}
}

// WithThresholdsFile loads QC rule thresholds from a YAML file.
func WithThresholdsFile(path string) Option {
	return func(c *Client) error {
		th, err := qc.LoadThresholds(path)
		if err != nil {
			return err
		}
		c.thresholds = th
		return nil
	}
}

// WithDurationTolerance overrides the audio/video duration mismatch
// tolerance in seconds.
func WithDurationTolerance(secs float64) Option {
	return func(c *Client) error {
		c.thresholds.DurationToleranceSecs = secs
		return c.thresholds.Validate()
	}
}

// WithLogger sets the logger used by the analysis pipeline.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

func (c *Client) analyzer() *analysis.Analyzer {
	return analysis.New(c.source, c.summarizer, c.thresholds, c.logger)
}

// Analyze runs the full QC pipeline for a single file.
func (c *Client) Analyze(ctx context.Context, path string) (*Result, error) {
	return c.analyzer().AnalyzeFile(ctx, path)
}

// AnalyzeBatch analyzes multiple files concurrently, reporting progress to
// rep. Results come back in input order; the batch fails as a whole on the
// first file error.
func (c *Client) AnalyzeBatch(ctx context.Context, paths []string, rep Reporter) ([]*Result, error) {
	return c.analyzer().AnalyzeBatch(ctx, paths, rep)
}

// Export serializes a result into the requested format.
func Export(result *Result, format Format) (*Artifact, error) {
	return export.Serialize(result, format)
}

// WriteArtifact stores an export artifact under dir and returns the written
// path.
func WriteArtifact(artifact *Artifact, dir string) (string, error) {
	return export.WriteArtifact(artifact, dir)
}

// Compare builds a side-by-side parameter comparison across results.
func Compare(results []*Result) (*compare.Report, error) {
	return compare.Results(results)
}

// BuildEncodeSet projects the fixed encode parameter summary across results.
func BuildEncodeSet(results []*Result) *EncodeSet {
	return compare.BuildEncodeSet(results)
}

// FindMedia resolves files and directories into the list of media files to
// analyze.
func FindMedia(args []string) ([]string, error) {
	return discovery.ResolvePaths(args)
}
