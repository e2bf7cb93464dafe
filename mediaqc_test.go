package mediaqc_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/mediaqc"
)

func writeMedia(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("media"), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestClientAnalyze(t *testing.T) {
	client, err := mediaqc.New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	dir := t.TempDir()
	path := writeMedia(t, dir, "feature.mkv")

	result, err := client.Analyze(context.Background(), path)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.FileName != "feature.mkv" {
		t.Errorf("FileName = %q", result.FileName)
	}
	if result.Status() != mediaqc.SeverityPass {
		t.Errorf("Status = %q, want Pass", result.Status())
	}
}

func TestClientAnalyzeBatchAndCompare(t *testing.T) {
	client, err := mediaqc.New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	dir := t.TempDir()
	paths := []string{
		writeMedia(t, dir, "one.mp4"),
		writeMedia(t, dir, "two_vfr.mp4"),
	}

	results, err := client.AnalyzeBatch(context.Background(), paths, nil)
	if err != nil {
		t.Fatalf("AnalyzeBatch failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}

	report, err := mediaqc.Compare(results)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if len(report.FileNames) != 2 {
		t.Errorf("compared %d files", len(report.FileNames))
	}

	set := mediaqc.BuildEncodeSet(results)
	if len(set.Rows) != 2 {
		t.Errorf("encode set has %d rows", len(set.Rows))
	}
}

func TestClientExport(t *testing.T) {
	client, err := mediaqc.New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	dir := t.TempDir()
	result, err := client.Analyze(context.Background(), writeMedia(t, dir, "clip.mov"))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	artifact, err := mediaqc.Export(result, mediaqc.FormatJSON)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if artifact.FileName != "clip_report.json" {
		t.Errorf("artifact name = %q", artifact.FileName)
	}

	path, err := mediaqc.WriteArtifact(artifact, filepath.Join(dir, "reports"))
	if err != nil {
		t.Fatalf("WriteArtifact failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("written artifact missing: %v", err)
	}
}

func TestWithProbeDelay(t *testing.T) {
	delay := 20 * time.Millisecond
	client, err := mediaqc.New(mediaqc.WithProbeDelay(delay))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	dir := t.TempDir()
	path := writeMedia(t, dir, "slow.mp4")

	start := time.Now()
	result, err := client.Analyze(context.Background(), path)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < delay {
		t.Errorf("analysis finished in %v, want at least %v of probe latency", elapsed, delay)
	}
	if result.FileName != "slow.mp4" {
		t.Errorf("FileName = %q", result.FileName)
	}
}

func TestWithDurationToleranceRejectsNonPositive(t *testing.T) {
	if _, err := mediaqc.New(mediaqc.WithDurationTolerance(0)); err == nil {
		t.Fatal("expected error for zero tolerance")
	}
}

func TestParseFormat(t *testing.T) {
	format, err := mediaqc.ParseFormat("XML")
	if err != nil {
		t.Fatalf("ParseFormat failed: %v", err)
	}
	if format != mediaqc.FormatXML {
		t.Errorf("format = %q", format)
	}
	if _, err := mediaqc.ParseFormat("docx"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestFindMedia(t *testing.T) {
	dir := t.TempDir()
	writeMedia(t, dir, "a.mp4")
	writeMedia(t, dir, "skip.txt")

	files, err := mediaqc.FindMedia([]string{dir})
	if err != nil {
		t.Fatalf("FindMedia failed: %v", err)
	}
	if len(files) != 1 || !strings.HasSuffix(files[0], "a.mp4") {
		t.Errorf("files = %v", files)
	}
}
