package compare

import (
	"github.com/five82/mediaqc/internal/analysis"
	"github.com/five82/mediaqc/internal/media"
	"github.com/five82/mediaqc/internal/util"
)

// encodeColumn is one fixed parameter of the encode-set projection.
type encodeColumn struct {
	header   string
	accessor func(*analysis.Result) string
}

// The encode-set parameter list is fixed. Order matters for rendering.
var encodeColumns = []encodeColumn{
	{"File_Name", func(r *analysis.Result) string { return r.FileName }},
	{"Video_Bitrate", videoParam("bit_rate")},
	{"Video_Resolution", videoParam("resolution")},
	{"Video_Profile", videoParam("profile")},
	{"Video_Level", videoParam("level")},
	{"Video_Preset", videoParam("preset")},
	{"Video_Framerate", videoParam("frame_rate")},
	{"Video_GOP", videoParam("gop_size")},
	{"Audio_SampleRate", audioParam("sample_rate")},
	{"Audio_Bitrate", audioParam("bit_rate")},
	{"Audio_AacProfile", audioParam("profile")},
}

func videoParam(key string) func(*analysis.Result) string {
	return func(r *analysis.Result) string {
		if r.MediaInfo == nil {
			return Missing
		}
		return trackParam(r.MediaInfo.Video, key)
	}
}

func audioParam(key string) func(*analysis.Result) string {
	return func(r *analysis.Result) string {
		if r.MediaInfo == nil || len(r.MediaInfo.Audio) == 0 {
			return Missing
		}
		return trackParam(r.MediaInfo.Audio[0], key)
	}
}

func trackParam(track *media.Track, key string) string {
	v, ok := track.Get(key)
	if !ok {
		return Missing
	}
	return v.String()
}

// EncodeSet is the fixed projection of encode parameters across results,
// one row per file.
type EncodeSet struct {
	Headers []string
	Labels  []string
	Rows    [][]string
	// MissingStreams is true when any file lacks a video track or has no
	// audio tracks, which yields placeholder cells.
	MissingStreams bool
}

// BuildEncodeSet projects the fixed encode parameter set from each result.
func BuildEncodeSet(results []*analysis.Result) *EncodeSet {
	set := &EncodeSet{
		Headers: make([]string, len(encodeColumns)),
		Labels:  make([]string, len(encodeColumns)),
	}
	for i, col := range encodeColumns {
		set.Headers[i] = col.header
		set.Labels[i] = util.HumanizeKey(col.header)
	}

	for _, r := range results {
		row := make([]string, len(encodeColumns))
		for i, col := range encodeColumns {
			row[i] = col.accessor(r)
		}
		set.Rows = append(set.Rows, row)

		if r.MediaInfo == nil || r.MediaInfo.Video == nil || len(r.MediaInfo.Audio) == 0 {
			set.MissingStreams = true
		}
	}
	return set
}
