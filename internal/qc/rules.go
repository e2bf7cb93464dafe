package qc

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/five82/mediaqc/internal/media"
	"github.com/five82/mediaqc/internal/util"
)

// DefaultDurationToleranceSecs is the maximum allowed difference between the
// video duration and each audio track duration before a mismatch is flagged.
const DefaultDurationToleranceSecs = 0.5

// Evaluate runs all rules against the metadata using default thresholds.
// It delegates to EvaluateWithThresholds.
func Evaluate(info *media.Info) []Issue {
	return EvaluateWithThresholds(info, DefaultThresholds())
}

// EvaluateWithThresholds runs the full rule set in declared order and
// concatenates the issues each rule produces. It is a pure, total function:
// deterministic for identical input, never short-circuiting on an earlier
// error, and with no failure mode over well-formed metadata.
func EvaluateWithThresholds(info *media.Info, th Thresholds) []Issue {
	issues := []Issue{}
	issues = append(issues, checkVariableFrameRate(info)...)
	issues = append(issues, checkMissingAudio(info)...)
	issues = append(issues, checkMissingVideo(info)...)
	issues = append(issues, checkDurationMismatch(info, th.DurationToleranceSecs)...)
	issues = append(issues, checkMissingLanguage(info)...)
	return issues
}

// checkVariableFrameRate flags a video track whose frame rate mode is VFR.
func checkVariableFrameRate(info *media.Info) []Issue {
	if info.Video == nil {
		return nil
	}
	mode, ok := info.Video.Get("frame_rate_mode")
	if !ok || mode.IsNumber() || mode.Text() != "VFR" {
		return nil
	}
	frameRate, _ := info.Video.Get("frame_rate")
	return []Issue{{
		ID:          "vfr_detected",
		Description: "Variable Frame Rate (VFR) Detected",
		Details: fmt.Sprintf(
			"The video track uses VFR, which can cause sync issues in some editing software. Frame rate: %s",
			frameRate),
		Severity: SeverityWarning,
	}}
}

// checkMissingAudio flags a file that has video but no audio tracks.
func checkMissingAudio(info *media.Info) []Issue {
	if info.Video == nil || len(info.Audio) > 0 {
		return nil
	}
	return []Issue{{
		ID:          "missing_audio",
		Description: "Missing Audio Stream",
		Details:     "The file contains a video track but no audio tracks were found.",
		Severity:    SeverityError,
	}}
}

// checkMissingVideo flags a file with no video track unless the container
// format indicates an audio-only file. The audio-only test is a heuristic
// substring match on the general format attribute.
func checkMissingVideo(info *media.Info) []Issue {
	if info.Video != nil {
		return nil
	}
	if format, ok := info.General.Get("format"); ok {
		if strings.Contains(strings.ToLower(format.String()), "audio") {
			return nil
		}
	}
	return []Issue{{
		ID:          "missing_video",
		Description: "Missing Video Stream",
		Details:     "The file does not appear to be an audio-only format but contains no video track.",
		Severity:    SeverityError,
	}}
}

// checkDurationMismatch compares the video duration against each audio
// track's duration and flags tracks that drift beyond the tolerance.
func checkDurationMismatch(info *media.Info, toleranceSecs float64) []Issue {
	if info.Video == nil || len(info.Audio) == 0 {
		return nil
	}
	videoDuration := durationSeconds(info.Video)

	var issues []Issue
	for i, track := range info.Audio {
		audioDuration := durationSeconds(track)
		diff := math.Abs(videoDuration - audioDuration)
		if diff <= toleranceSecs {
			continue
		}
		issues = append(issues, Issue{
			ID:          fmt.Sprintf("duration_mismatch_%d", i),
			Description: "Audio/Video Duration Mismatch",
			Details: fmt.Sprintf(
				"Video duration (%ss) and Audio Stream #%d duration (%ss) differ by %.2fs.",
				formatSeconds(videoDuration), i+1, formatSeconds(audioDuration), diff),
			Severity: SeverityWarning,
		})
	}
	return issues
}

// checkMissingLanguage flags each audio track without a language tag.
func checkMissingLanguage(info *media.Info) []Issue {
	var issues []Issue
	for i, track := range info.Audio {
		if hasLanguageTag(track) {
			continue
		}
		issues = append(issues, Issue{
			ID:          fmt.Sprintf("missing_lang_%d", i),
			Description: "Missing Audio Language Tag",
			Details:     fmt.Sprintf("Audio Stream #%d does not have a language tag specified.", i+1),
			Severity:    SeverityWarning,
		})
	}
	return issues
}

// hasLanguageTag reports whether the track carries a usable language value.
// Absent, empty, and zero-valued attributes all count as missing.
func hasLanguageTag(track *media.Track) bool {
	v, ok := track.Get("language")
	if !ok || v.IsEmpty() {
		return false
	}
	if n, isNum := v.Number(); isNum && n == 0 {
		return false
	}
	return true
}

// durationSeconds parses a track's duration attribute as a leading float.
// Numeric values pass through; absent or non-numeric values parse as 0.
func durationSeconds(track *media.Track) float64 {
	v, ok := track.Get("duration")
	if !ok {
		return 0
	}
	if n, isNum := v.Number(); isNum {
		return n
	}
	return util.ParseLeadingFloat(v.Text())
}

func formatSeconds(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
