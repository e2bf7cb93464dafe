package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/five82/mediaqc/internal/analysis"
	"github.com/five82/mediaqc/internal/media"
	"github.com/five82/mediaqc/internal/qc"
)

func fixtureResult() *analysis.Result {
	general := media.NewTrack()
	general.SetString("file_name", "clip.final.mov")
	general.SetString("format", "MPEG-4")
	general.SetString("duration", "120.5s")

	video := media.NewTrack()
	video.SetString("codec", "AVC")
	video.SetNumber("bit_rate", 8666688)
	video.SetString("frame_rate_mode", "CFR")

	audio := media.NewTrack()
	audio.SetString("codec", "AAC")
	audio.SetNumber("sample_rate", 48000)
	audio.SetString("language", "en")

	return &analysis.Result{
		ID:        "clip.final.mov-2024-05-01T10:00:00Z",
		FileName:  "clip.final.mov",
		Timestamp: "2024-05-01T10:00:00Z",
		MediaInfo: &media.Info{
			General:   general,
			Video:     video,
			Audio:     []*media.Track{audio},
			Subtitles: []*media.Track{},
		},
		Issues:  nil,
		Summary: "This file passed all quality control checks successfully.",
	}
}

func fixtureResultWithIssues() *analysis.Result {
	r := fixtureResult()
	r.Issues = []qc.Issue{
		{
			ID:          "vfr_detected",
			Description: "Variable Frame Rate Detected",
			Details:     "The video track uses VFR. Frame rate: 29.97",
			Severity:    qc.SeverityWarning,
		},
		{
			ID:          "missing_audio",
			Description: "Missing Audio Stream",
			Details:     "The file contains a video track but no audio tracks were found.",
			Severity:    qc.SeverityError,
		},
	}
	return r
}

func TestSerializeJSONRoundTrip(t *testing.T) {
	original := fixtureResult()
	artifact, err := Serialize(original, FormatJSON)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	if artifact.FileName != "clip.final_report.json" {
		t.Errorf("FileName = %q, want clip.final_report.json", artifact.FileName)
	}
	if artifact.MediaType != "application/json" {
		t.Errorf("MediaType = %q", artifact.MediaType)
	}
	if !bytes.Contains(artifact.Content, []byte("\n  \"id\":")) {
		t.Error("JSON output should be indented with two spaces")
	}

	var decoded analysis.Result
	if err := json.Unmarshal(artifact.Content, &decoded); err != nil {
		t.Fatalf("decoding exported JSON: %v", err)
	}
	if decoded.ID != original.ID || decoded.FileName != original.FileName {
		t.Errorf("decoded identity = %q/%q", decoded.ID, decoded.FileName)
	}
	if !decoded.MediaInfo.Equal(original.MediaInfo) {
		t.Error("decoded media info differs from original")
	}
	if decoded.Summary != original.Summary {
		t.Errorf("decoded summary = %q", decoded.Summary)
	}
}

func TestSerializeCSV(t *testing.T) {
	artifact, err := Serialize(fixtureResult(), FormatCSV)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(artifact.Content), "\n"), "\n")
	if lines[0] != "Track Type,Parameter,Value" {
		t.Errorf("header = %q", lines[0])
	}
	want := []string{
		`General,file_name,"clip.final.mov"`,
		`General,format,"MPEG-4"`,
		`General,duration,"120.5s"`,
		`Video,codec,"AVC"`,
		`Video,bit_rate,"8666688"`,
		`Video,frame_rate_mode,"CFR"`,
		`Audio 1,codec,"AAC"`,
		`Audio 1,sample_rate,"48000"`,
		`Audio 1,language,"en"`,
	}
	if len(lines)-1 != len(want) {
		t.Fatalf("got %d data rows, want %d:\n%s", len(lines)-1, len(want), artifact.Content)
	}
	for i, row := range want {
		if lines[i+1] != row {
			t.Errorf("row %d = %q, want %q", i+1, lines[i+1], row)
		}
	}
}

func TestSerializeCSVQuoteEscaping(t *testing.T) {
	r := fixtureResult()
	r.MediaInfo.General.SetString("title", `The "Final" Cut`)

	artifact, err := Serialize(r, FormatCSV)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !strings.Contains(string(artifact.Content), `General,title,"The ""Final"" Cut"`) {
		t.Errorf("embedded quotes not doubled:\n%s", artifact.Content)
	}
}

func TestSerializeTextCleanFile(t *testing.T) {
	artifact, err := Serialize(fixtureResult(), FormatText)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	text := string(artifact.Content)

	if !strings.HasPrefix(text, "MediaQC Pro Summary for: clip.final.mov\n") {
		t.Errorf("missing title line:\n%s", text)
	}
	for _, want := range []string{
		"Analysis Date: ",
		"--- QC SUMMARY ---\n",
		"This file passed all quality control checks successfully.\n",
		"No issues found.\n",
		"--- GENERAL ---\n",
		"--- VIDEO ---\n",
		"--- AUDIO STREAM 1 ---\n",
		"file name: clip.final.mov\n",
		"frame rate mode: CFR\n",
		"bit rate: 8666688\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("text report missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "[Warning]") || strings.Contains(text, "[Error]") {
		t.Error("clean file should not list issue lines")
	}
}

func TestSerializeTextWithIssues(t *testing.T) {
	artifact, err := Serialize(fixtureResultWithIssues(), FormatText)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	text := string(artifact.Content)

	if strings.Contains(text, "No issues found.") {
		t.Error("issue report should not claim no issues")
	}
	if !strings.Contains(text, "[Warning] Variable Frame Rate Detected: The video track uses VFR. Frame rate: 29.97\n") {
		t.Errorf("missing warning line:\n%s", text)
	}
	if !strings.Contains(text, "[Error] Missing Audio Stream: ") {
		t.Errorf("missing error line:\n%s", text)
	}
}

func TestSerializeXML(t *testing.T) {
	artifact, err := Serialize(fixtureResultWithIssues(), FormatXML)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	xml := string(artifact.Content)

	if !strings.HasPrefix(xml, "<?xml version=\"1.0\" encoding=\"UTF-8\" ?>\n") {
		t.Errorf("missing XML declaration:\n%s", xml[:60])
	}
	for _, want := range []string{
		"<MediaQCPro>",
		"<analysis>",
		"<id>clip.final.mov-2024-05-01T10:00:00Z</id>",
		"<fileName>clip.final.mov</fileName>",
		"<general>",
		"<bit_rate>8666688</bit_rate>",
		"<qcIssues>",
		"<severity>Warning</severity>",
		"<severity>Error</severity>",
		"<qcSummary>This file passed all quality control checks successfully.</qcSummary>",
		"</MediaQCPro>",
	} {
		if !strings.Contains(xml, want) {
			t.Errorf("XML missing %q", want)
		}
	}
	if got := strings.Count(xml, "<qcIssues>"); got != 2 {
		t.Errorf("got %d qcIssues elements, want one per issue (2)", got)
	}
}

func TestSerializeXMLEmptyVideoElement(t *testing.T) {
	r := fixtureResult()
	r.MediaInfo.Video = nil
	r.MediaInfo.Audio = nil

	artifact, err := Serialize(r, FormatXML)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	xml := string(artifact.Content)
	if !strings.Contains(xml, "<video/>") {
		t.Errorf("missing video track should render as an empty element:\n%s", xml)
	}
	if strings.Contains(xml, "<audio") {
		t.Error("empty audio list should emit no elements")
	}
}

func TestSerializePDF(t *testing.T) {
	artifact, err := Serialize(fixtureResultWithIssues(), FormatPDF)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if artifact.FileName != "clip.final_report.pdf" {
		t.Errorf("FileName = %q", artifact.FileName)
	}
	if !bytes.HasPrefix(artifact.Content, []byte("%PDF")) {
		t.Error("PDF output missing %PDF header")
	}
}

func TestWriteArtifact(t *testing.T) {
	artifact, err := Serialize(fixtureResult(), FormatJSON)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	dir := t.TempDir() + "/reports"
	path, err := WriteArtifact(artifact, dir)
	if err != nil {
		t.Fatalf("WriteArtifact failed: %v", err)
	}
	if !strings.HasSuffix(path, "clip.final_report.json") {
		t.Errorf("path = %q", path)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{" xml ", FormatXML, false},
		{"csv", FormatCSV, false},
		{"txt", FormatText, false},
		{"text", FormatText, false},
		{"pdf", FormatPDF, false},
		{"yaml", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReportFileName(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		want   string
	}{
		{"clip.final.mov", FormatJSON, "clip.final_report.json"},
		{"movie.mkv", FormatText, "movie_report.txt"},
		{"noext", FormatCSV, "noext_report.csv"},
	}
	for _, tt := range tests {
		if got := ReportFileName(tt.name, tt.format); got != tt.want {
			t.Errorf("ReportFileName(%q, %s) = %q, want %q", tt.name, tt.format, got, tt.want)
		}
	}
}
