package reporter

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/five82/mediaqc/internal/qc"
)

func decodeEvents(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var events []map[string]any
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var event map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			t.Fatalf("invalid NDJSON line %q: %v", scanner.Text(), err)
		}
		events = append(events, event)
	}
	return events
}

func TestJSONReporterEmitsNDJSON(t *testing.T) {
	var buf bytes.Buffer
	rep := NewJSONReporterWithWriter(&buf)

	rep.BatchStarted(BatchStartInfo{
		RunID:      "run-1",
		TotalFiles: 2,
		FileList:   []string{"a.mp4", "b.mkv"},
	})
	rep.FileProgress(FileProgressContext{CurrentFile: 1, TotalFiles: 2, FileName: "a.mp4"})
	rep.FileAnalyzed(FileSummary{
		FileName:     "a.mp4",
		Status:       qc.SeverityWarning,
		SizeBytes:    2048,
		WarningCount: 1,
	})
	rep.BatchComplete(BatchSummary{
		TotalFiles:    2,
		PassedFiles:   1,
		WarningFiles:  1,
		TotalDuration: 3 * time.Second,
	})

	events := decodeEvents(t, &buf)
	if len(events) != 4 {
		t.Fatalf("got %d events, want 4", len(events))
	}

	wantTypes := []string{"batch_started", "file_progress", "file_analyzed", "batch_complete"}
	for i, want := range wantTypes {
		if events[i]["type"] != want {
			t.Errorf("events[%d] type = %v, want %s", i, events[i]["type"], want)
		}
		if _, ok := events[i]["timestamp"]; !ok {
			t.Errorf("events[%d] has no timestamp", i)
		}
	}

	analyzed := events[2]
	if analyzed["file_name"] != "a.mp4" {
		t.Errorf("file_analyzed file_name = %v", analyzed["file_name"])
	}
	if analyzed["status"] != string(qc.SeverityWarning) {
		t.Errorf("file_analyzed status = %v", analyzed["status"])
	}
	if analyzed["size_bytes"] != float64(2048) {
		t.Errorf("file_analyzed size_bytes = %v, want 2048", analyzed["size_bytes"])
	}

	if events[3]["duration_seconds"] != float64(3) {
		t.Errorf("batch_complete duration_seconds = %v, want 3", events[3]["duration_seconds"])
	}
}
