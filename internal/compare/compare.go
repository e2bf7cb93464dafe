// Package compare builds side-by-side views over analysis results: a
// section-by-section parameter comparison and a fixed encode-set summary.
package compare

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/five82/mediaqc/internal/analysis"
	"github.com/five82/mediaqc/internal/errors"
	"github.com/five82/mediaqc/internal/media"
	"github.com/five82/mediaqc/internal/qc"
	"github.com/five82/mediaqc/internal/util"
)

// Missing is the placeholder rendered for a parameter a file does not carry.
const Missing = "N/A"

var titleCaser = cases.Title(language.English)

// Row is one parameter compared across all files. Values holds one rendered
// cell per file, in result order. Divergent is true when the underlying
// values are not all identical; a parameter absent from every file is not
// divergent.
type Row struct {
	Key       string
	Label     string
	Values    []string
	Divergent bool
}

// Section groups the rows of one metadata track.
type Section struct {
	Title string
	Rows  []Row
}

// Report is the full comparison across a set of results.
type Report struct {
	FileNames []string
	Statuses  []qc.Severity
	Sections  []Section
}

// Results compares the general and video tracks of one or more results.
// Section rows cover the union of keys across all files, ordered by first
// appearance.
func Results(results []*analysis.Result) (*Report, error) {
	if len(results) == 0 {
		return nil, errors.NewOperationFailedError("comparison requires at least one result", nil)
	}

	report := &Report{
		FileNames: make([]string, len(results)),
		Statuses:  make([]qc.Severity, len(results)),
	}
	for i, r := range results {
		report.FileNames[i] = r.FileName
		report.Statuses[i] = r.Status()
	}

	general := make([]*media.Track, len(results))
	video := make([]*media.Track, len(results))
	for i, r := range results {
		if r.MediaInfo != nil {
			general[i] = r.MediaInfo.General
			video[i] = r.MediaInfo.Video
		}
	}

	report.Sections = []Section{
		{Title: "General", Rows: buildRows(general)},
		{Title: "Video", Rows: buildRows(video)},
	}
	return report, nil
}

// keyUnion returns every key appearing in any track, ordered by first
// appearance across tracks.
func keyUnion(tracks []*media.Track) []string {
	var keys []string
	seen := make(map[string]struct{})
	for _, track := range tracks {
		for _, k := range track.Keys() {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	return keys
}

func buildRows(tracks []*media.Track) []Row {
	keys := keyUnion(tracks)
	rows := make([]Row, 0, len(keys))
	for _, key := range keys {
		row := Row{
			Key:    key,
			Label:  titleCaser.String(util.HumanizeKey(key)),
			Values: make([]string, len(tracks)),
		}

		type cell struct {
			value   media.Value
			present bool
		}
		first := cell{}
		for i, track := range tracks {
			v, ok := track.Get(key)
			if ok {
				row.Values[i] = v.String()
			} else {
				row.Values[i] = Missing
			}

			c := cell{value: v, present: ok}
			if i == 0 {
				first = c
			} else if c != first {
				row.Divergent = true
			}
		}
		rows = append(rows, row)
	}
	return rows
}
