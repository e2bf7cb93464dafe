package qc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/mediaqc/internal/media"
)

func videoTrack(durationSecs string, frameRateMode string) *media.Track {
	t := media.NewTrack()
	t.SetString("codec", "AVC")
	t.SetNumber("frame_rate", 29.97)
	t.SetString("frame_rate_mode", frameRateMode)
	t.SetString("duration", durationSecs)
	return t
}

func audioTrack(durationSecs, lang string) *media.Track {
	t := media.NewTrack()
	t.SetString("codec", "AAC")
	t.SetString("duration", durationSecs)
	if lang != "" {
		t.SetString("language", lang)
	}
	return t
}

func generalTrack(format string) *media.Track {
	t := media.NewTrack()
	t.SetString("format", format)
	return t
}

func findIssue(issues []Issue, id string) *Issue {
	for i := range issues {
		if issues[i].ID == id {
			return &issues[i]
		}
	}
	return nil
}

func TestEvaluateVFRDetected(t *testing.T) {
	info := &media.Info{
		General: generalTrack("MPEG-4"),
		Video:   videoTrack("120.5s", "VFR"),
		Audio:   []*media.Track{audioTrack("120.5s", "en")},
	}

	issues := Evaluate(info)
	issue := findIssue(issues, "vfr_detected")
	if issue == nil {
		t.Fatal("expected vfr_detected issue")
	}
	if issue.Severity != SeverityWarning {
		t.Errorf("vfr_detected severity = %s, want Warning", issue.Severity)
	}
	if want := "Frame rate: 29.97"; !contains(issue.Details, want) {
		t.Errorf("vfr_detected details = %q, want substring %q", issue.Details, want)
	}

	// CFR must not trigger the rule.
	info.Video = videoTrack("120.5s", "CFR")
	if findIssue(Evaluate(info), "vfr_detected") != nil {
		t.Error("CFR video produced a vfr_detected issue")
	}
}

func TestEvaluateMissingAudio(t *testing.T) {
	info := &media.Info{
		General: generalTrack("MPEG-4"),
		Video:   videoTrack("120.5s", "CFR"),
		Audio:   nil,
	}

	issues := Evaluate(info)
	issue := findIssue(issues, "missing_audio")
	if issue == nil {
		t.Fatal("expected missing_audio issue")
	}
	if issue.Severity != SeverityError {
		t.Errorf("missing_audio severity = %s, want Error", issue.Severity)
	}

	count := 0
	for _, is := range issues {
		if is.ID == "missing_audio" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("missing_audio emitted %d times, want exactly 1", count)
	}
}

func TestEvaluateMissingVideo(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   bool
	}{
		{"plain container", "MPEG-4", true},
		{"audio container", "MPEG Audio", false},
		{"case insensitive", "FLAC AUDIO", false},
		{"empty format", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := &media.Info{
				General: generalTrack(tt.format),
				Audio:   []*media.Track{audioTrack("300.0s", "en")},
			}
			issue := findIssue(Evaluate(info), "missing_video")
			if got := issue != nil; got != tt.want {
				t.Errorf("missing_video present = %v, want %v (format %q)", got, tt.want, tt.format)
			}
			if issue != nil && issue.Severity != SeverityError {
				t.Errorf("missing_video severity = %s, want Error", issue.Severity)
			}
		})
	}
}

func TestEvaluateDurationMismatch(t *testing.T) {
	info := &media.Info{
		General: generalTrack("Matroska"),
		Video:   videoTrack("125.0s", "CFR"),
		Audio: []*media.Track{
			audioTrack("120.5s", "en"), // drifts 4.5s
			audioTrack("125.0s", "en"), // in sync
			audioTrack("124.6s", "en"), // drifts 0.4s, within tolerance
		},
	}

	issues := Evaluate(info)

	issue := findIssue(issues, "duration_mismatch_0")
	if issue == nil {
		t.Fatal("expected duration_mismatch_0 issue")
	}
	if issue.Severity != SeverityWarning {
		t.Errorf("duration_mismatch_0 severity = %s, want Warning", issue.Severity)
	}
	wantDetails := "Video duration (125s) and Audio Stream #1 duration (120.5s) differ by 4.50s."
	if issue.Details != wantDetails {
		t.Errorf("duration_mismatch_0 details = %q, want %q", issue.Details, wantDetails)
	}

	if findIssue(issues, "duration_mismatch_1") != nil {
		t.Error("in-sync audio track produced a mismatch issue")
	}
	if findIssue(issues, "duration_mismatch_2") != nil {
		t.Error("drift within tolerance produced a mismatch issue")
	}
}

func TestEvaluateDurationMismatchNonNumericParsesAsZero(t *testing.T) {
	info := &media.Info{
		General: generalTrack("Matroska"),
		Video:   videoTrack("120.5s", "CFR"),
		Audio:   []*media.Track{audioTrack("unknown", "en")},
	}
	if findIssue(Evaluate(info), "duration_mismatch_0") == nil {
		t.Error("non-numeric audio duration (parsed as 0) should mismatch a 120.5s video")
	}
}

func TestEvaluateMissingLanguage(t *testing.T) {
	noLang := audioTrack("120.5s", "")
	emptyLang := audioTrack("120.5s", "")
	emptyLang.SetString("language", "")
	tagged := audioTrack("120.5s", "en")

	info := &media.Info{
		General: generalTrack("MPEG-4"),
		Video:   videoTrack("120.5s", "CFR"),
		Audio:   []*media.Track{noLang, tagged, emptyLang},
	}

	issues := Evaluate(info)
	if findIssue(issues, "missing_lang_0") == nil {
		t.Error("expected missing_lang_0 for untagged track")
	}
	if findIssue(issues, "missing_lang_1") != nil {
		t.Error("tagged track produced missing_lang_1")
	}
	issue := findIssue(issues, "missing_lang_2")
	if issue == nil {
		t.Fatal("expected missing_lang_2 for empty language value")
	}
	if want := "Audio Stream #3"; !contains(issue.Details, want) {
		t.Errorf("missing_lang_2 details = %q, want substring %q", issue.Details, want)
	}
}

func TestEvaluateIsDeterministicAndOrdered(t *testing.T) {
	info := &media.Info{
		General: generalTrack("MPEG-4"),
		Video:   videoTrack("125.0s", "VFR"),
		Audio:   []*media.Track{audioTrack("120.5s", "")},
	}

	first := Evaluate(info)
	second := Evaluate(info)
	if len(first) != len(second) {
		t.Fatalf("issue count differs between runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("issue %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}

	wantOrder := []string{"vfr_detected", "duration_mismatch_0", "missing_lang_0"}
	if len(first) != len(wantOrder) {
		t.Fatalf("issues = %+v, want ids %v", first, wantOrder)
	}
	for i, id := range wantOrder {
		if first[i].ID != id {
			t.Errorf("issue[%d].ID = %s, want %s", i, first[i].ID, id)
		}
	}
}

func TestOverallStatus(t *testing.T) {
	tests := []struct {
		name   string
		issues []Issue
		want   Severity
	}{
		{"empty", nil, SeverityPass},
		{"warnings only", []Issue{{Severity: SeverityWarning}}, SeverityWarning},
		{"error wins", []Issue{{Severity: SeverityWarning}, {Severity: SeverityError}}, SeverityError},
	}
	for _, tt := range tests {
		if got := OverallStatus(tt.issues); got != tt.want {
			t.Errorf("%s: OverallStatus() = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestLoadThresholds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "thresholds.yaml")
	if err := os.WriteFile(path, []byte("duration_tolerance_secs: 1.5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	th, err := LoadThresholds(path)
	if err != nil {
		t.Fatalf("LoadThresholds() error = %v", err)
	}
	if th.DurationToleranceSecs != 1.5 {
		t.Errorf("DurationToleranceSecs = %v, want 1.5", th.DurationToleranceSecs)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("duration_tolerance_secs: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadThresholds(bad); err == nil {
		t.Error("LoadThresholds() accepted a negative tolerance")
	}
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
