package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/five82/mediaqc/internal/analysis"
	"github.com/five82/mediaqc/internal/errors"
	"github.com/five82/mediaqc/internal/media"
	"github.com/five82/mediaqc/internal/util"
)

// Artifact is a serialized report ready to be written out.
type Artifact struct {
	FileName  string
	MediaType string
	Content   []byte
}

// Serialize renders a result into the requested format.
func Serialize(result *analysis.Result, format Format) (*Artifact, error) {
	if result == nil {
		return nil, errors.NewExportError("no result to export", nil)
	}

	var (
		content []byte
		err     error
	)
	switch format {
	case FormatJSON:
		content, err = json.MarshalIndent(result, "", "  ")
		if err != nil {
			err = errors.NewExportError("encoding JSON report", err)
		}
	case FormatXML:
		content = []byte(toXML(element{{"analysis", resultElement(result)}}, "MediaQCPro"))
	case FormatCSV:
		content = []byte(toCSV(result.MediaInfo))
	case FormatText:
		content = []byte(toTextSummary(result))
	case FormatPDF:
		content, err = toPDF(result)
	default:
		err = errors.NewExportError(fmt.Sprintf("unsupported export format %q", format), nil)
	}
	if err != nil {
		return nil, err
	}

	return &Artifact{
		FileName:  ReportFileName(result.FileName, format),
		MediaType: format.MediaType(),
		Content:   content,
	}, nil
}

// WriteArtifact stores the artifact under dir, creating dir if needed, and
// returns the written path.
func WriteArtifact(artifact *Artifact, dir string) (string, error) {
	if err := util.EnsureDirectory(dir); err != nil {
		return "", err
	}
	path := filepath.Join(dir, artifact.FileName)
	if err := os.WriteFile(path, artifact.Content, 0o644); err != nil {
		return "", errors.NewExportError("writing report file", err)
	}
	return path, nil
}

// member is one named child of an XML element. Names starting with "@"
// become attributes, "#text" emits raw character data, and "#cdata" emits a
// CDATA section.
type member struct {
	name  string
	value any // string, element, or []any
}

// element is an ordered member list. Order is the emission order.
type element []member

// toXML renders the legacy report dialect: tab indentation, newlines only
// after repeated elements, and no character escaping.
func toXML(root element, rootName string) string {
	return "<?xml version=\"1.0\" encoding=\"UTF-8\" ?>\n" + renderXML(root, rootName, "")
}

func renderXML(value any, name, ind string) string {
	var b strings.Builder
	switch v := value.(type) {
	case []any:
		for _, item := range v {
			b.WriteString(ind + renderXML(item, name, ind+"\t") + "\n")
		}
	case element:
		b.WriteString(ind + "<" + name)
		hasChild := false
		for _, m := range v {
			if strings.HasPrefix(m.name, "@") {
				b.WriteString(" " + m.name[1:] + "=\"" + scalarText(m.value) + "\"")
			} else {
				hasChild = true
			}
		}
		if !hasChild {
			b.WriteString("/>")
			return b.String()
		}
		b.WriteString(">")
		for _, m := range v {
			switch {
			case m.name == "#text":
				b.WriteString(scalarText(m.value))
			case m.name == "#cdata":
				b.WriteString("<![CDATA[" + scalarText(m.value) + "]]>")
			case !strings.HasPrefix(m.name, "@"):
				b.WriteString(renderXML(m.value, m.name, ind+"\t"))
			}
		}
		out := b.String()
		if strings.HasSuffix(out, "\n") {
			return out + ind + "</" + name + ">"
		}
		return out + "</" + name + ">"
	default:
		b.WriteString(ind + "<" + name + ">" + scalarText(v) + "</" + name + ">")
	}
	return b.String()
}

func scalarText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func resultElement(r *analysis.Result) element {
	issues := make([]any, 0, len(r.Issues))
	for _, issue := range r.Issues {
		issues = append(issues, element{
			{"id", issue.ID},
			{"description", issue.Description},
			{"details", issue.Details},
			{"severity", string(issue.Severity)},
		})
	}
	return element{
		{"id", r.ID},
		{"fileName", r.FileName},
		{"timestamp", r.Timestamp},
		{"mediaInfo", infoElement(r.MediaInfo)},
		{"qcIssues", issues},
		{"qcSummary", r.Summary},
	}
}

func infoElement(info *media.Info) element {
	if info == nil {
		return element{}
	}
	audio := make([]any, 0, len(info.Audio))
	for _, track := range info.Audio {
		audio = append(audio, trackElement(track))
	}
	subtitles := make([]any, 0, len(info.Subtitles))
	for _, track := range info.Subtitles {
		subtitles = append(subtitles, trackElement(track))
	}
	return element{
		{"general", trackElement(info.General)},
		{"video", trackElement(info.Video)},
		{"audio", audio},
		{"subtitles", subtitles},
	}
}

func trackElement(track *media.Track) element {
	el := element{}
	for _, key := range track.Keys() {
		v, _ := track.Get(key)
		el = append(el, member{key, v.String()})
	}
	return el
}

// toCSV flattens all tracks into Track Type / Parameter / Value rows. Values
// are always quoted, with embedded quotes doubled.
func toCSV(info *media.Info) string {
	var b strings.Builder
	b.WriteString("Track Type,Parameter,Value\n")
	if info == nil {
		return b.String()
	}

	addTrack := func(trackType string, track *media.Track) {
		if track == nil {
			return
		}
		for _, key := range track.Keys() {
			v, _ := track.Get(key)
			quoted := "\"" + strings.ReplaceAll(v.String(), "\"", "\"\"") + "\""
			b.WriteString(trackType + "," + key + "," + quoted + "\n")
		}
	}

	addTrack("General", info.General)
	addTrack("Video", info.Video)
	for i, track := range info.Audio {
		addTrack(fmt.Sprintf("Audio %d", i+1), track)
	}
	for i, track := range info.Subtitles {
		addTrack(fmt.Sprintf("Subtitle %d", i+1), track)
	}
	return b.String()
}

// toTextSummary renders the human-readable plain text report.
func toTextSummary(r *analysis.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "MediaQC Pro Summary for: %s\n", r.FileName)
	fmt.Fprintf(&b, "Analysis Date: %s\n\n", displayTimestamp(r.Timestamp))

	b.WriteString("--- QC SUMMARY ---\n")
	b.WriteString(r.Summary + "\n")
	if len(r.Issues) > 0 {
		for _, issue := range r.Issues {
			fmt.Fprintf(&b, "[%s] %s: %s\n", issue.Severity, issue.Description, issue.Details)
		}
	} else {
		b.WriteString("No issues found.\n")
	}
	b.WriteString("\n")

	addTrack := func(title string, track *media.Track) {
		if track == nil {
			return
		}
		fmt.Fprintf(&b, "--- %s ---\n", strings.ToUpper(title))
		for _, key := range track.Keys() {
			v, _ := track.Get(key)
			fmt.Fprintf(&b, "%s: %s\n", util.HumanizeKey(key), v.String())
		}
		b.WriteString("\n")
	}

	if r.MediaInfo != nil {
		addTrack("General", r.MediaInfo.General)
		addTrack("Video", r.MediaInfo.Video)
		for i, track := range r.MediaInfo.Audio {
			addTrack(fmt.Sprintf("Audio Stream %d", i+1), track)
		}
		for i, track := range r.MediaInfo.Subtitles {
			addTrack(fmt.Sprintf("Subtitle Stream %d", i+1), track)
		}
	}
	return b.String()
}

// displayTimestamp localizes the stored timestamp for the text report,
// falling back to the raw value when it does not parse.
func displayTimestamp(ts string) string {
	parsed, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return parsed.Local().Format("1/2/2006, 3:04:05 PM")
}
