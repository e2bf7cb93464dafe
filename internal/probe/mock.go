package probe

import (
	"context"
	"strings"
	"time"

	"github.com/five82/mediaqc/internal/errors"
	"github.com/five82/mediaqc/internal/media"
	"github.com/five82/mediaqc/internal/util"
)

// MockSource simulates metadata extraction. Fixture selection is keyed by
// filename substrings: "vfr" selects a variable-frame-rate video, "mismatch"
// a file with drifting audio duration, "no_audio" a silent video, and the
// common audio extensions an audio-only file. Everything else gets a clean
// 1080p fixture. The file must exist; its real name and size overwrite the
// fixture's file_name and file_size attributes.
type MockSource struct {
	// Delay simulates probe latency per file. Zero means no delay.
	Delay time.Duration
}

// NewMockSource returns a mock source with no simulated latency.
func NewMockSource() *MockSource {
	return &MockSource{}
}

// Extract implements Source.
func (s *MockSource) Extract(ctx context.Context, path string) (*media.Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	size, err := util.GetFileSize(path)
	if err != nil {
		return nil, errors.NewProbeError("cannot read media file "+path, err)
	}

	name := util.GetFilename(path)
	info := selectFixture(name).Clone()
	info.General.SetString("file_name", name)
	info.General.SetString("file_size", util.FormatSizeMB(size))
	return info, nil
}

func selectFixture(name string) *media.Info {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "vfr"):
		return vfrVideoFixture
	case strings.Contains(lower, "mismatch"):
		return mismatchedDurationFixture
	case strings.Contains(lower, "no_audio"):
		return missingAudioFixture
	case strings.HasSuffix(lower, ".mp3"),
		strings.HasSuffix(lower, ".wav"),
		strings.HasSuffix(lower, ".aac"),
		strings.HasSuffix(lower, ".flac"):
		return audioOnlyFixture
	default:
		return cleanVideoFixture
	}
}

var (
	cleanVideoFixture         = buildCleanVideo()
	vfrVideoFixture           = buildVFRVideo()
	mismatchedDurationFixture = buildMismatchedDuration()
	missingAudioFixture       = buildMissingAudio()
	audioOnlyFixture          = buildAudioOnly()
)

func buildCleanVideo() *media.Info {
	general := media.NewTrack()
	general.SetString("file_name", "perfect_movie.mov")
	general.SetString("file_size", "1.2 GB")
	general.SetString("format", "MPEG-4")
	general.SetString("duration", "120.5s")
	general.SetNumber("overall_bit_rate", 8858688)
	general.SetString("creation_date", time.Now().UTC().Format(time.RFC3339))

	video := media.NewTrack()
	video.SetString("codec", "AVC")
	video.SetString("resolution", "1920x1080")
	video.SetNumber("frame_rate", 29.97)
	video.SetString("frame_rate_mode", "CFR")
	video.SetString("aspect_ratio", "16:9")
	video.SetString("color_space", "YUV")
	video.SetString("bit_depth", "8 bits")
	video.SetString("scan_type", "Progressive")
	video.SetString("gop_structure", "IBBP")
	video.SetNumber("bit_rate", 8666688)
	video.SetString("profile", "Main")
	video.SetString("level", "5.1")
	video.SetString("preset", "Slow")
	video.SetNumber("gop_size", 50)
	video.SetString("duration", "120.5s")

	audio := media.NewTrack()
	audio.SetString("codec", "AAC")
	audio.SetString("channels", "2")
	audio.SetNumber("sample_rate", 44100)
	audio.SetNumber("bit_rate", 192000)
	audio.SetString("bit_depth", "16 bits")
	audio.SetString("language", "en")
	audio.SetString("duration", "120.5s")
	audio.SetString("profile", "LC")

	subtitle := media.NewTrack()
	subtitle.SetString("format", "Timed Text")
	subtitle.SetString("language", "en")
	subtitle.SetString("count", "1")

	return &media.Info{
		General:   general,
		Video:     video,
		Audio:     []*media.Track{audio},
		Subtitles: []*media.Track{subtitle},
	}
}

func buildVFRVideo() *media.Info {
	info := buildCleanVideo()
	info.General.SetString("file_name", "vfr_video.mp4")
	info.Video.SetNumber("frame_rate", 29.97)
	info.Video.SetString("frame_rate_mode", "VFR")
	return info
}

func buildMismatchedDuration() *media.Info {
	info := buildCleanVideo()
	info.General.SetString("file_name", "mismatch_duration.mkv")
	info.General.SetString("duration", "125.0s")
	info.Video.SetString("duration", "125.0s")
	info.Audio[0].SetString("duration", "120.5s")
	return info
}

func buildMissingAudio() *media.Info {
	info := buildCleanVideo()
	info.General.SetString("file_name", "no_audio.mp4")
	info.Audio = []*media.Track{}
	return info
}

func buildAudioOnly() *media.Info {
	general := media.NewTrack()
	general.SetString("file_name", "podcast_episode.mp3")
	general.SetString("file_size", "50.2 MB")
	general.SetString("format", "MPEG Audio")
	general.SetString("duration", "300.0s")
	general.SetNumber("overall_bit_rate", 128000)
	general.SetString("creation_date", time.Now().UTC().Format(time.RFC3339))

	audio := media.NewTrack()
	audio.SetString("codec", "MP3")
	audio.SetString("channels", "2")
	audio.SetNumber("sample_rate", 44100)
	audio.SetNumber("bit_rate", 128000)
	audio.SetString("bit_depth", "16 bits")
	audio.SetString("duration", "300.0s")

	return &media.Info{
		General:   general,
		Video:     nil,
		Audio:     []*media.Track{audio},
		Subtitles: []*media.Track{},
	}
}
