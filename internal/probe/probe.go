// Package probe provides metadata extraction for media files.
//
// The Source interface is the boundary behind which a real media-inspection
// backend (ffprobe, MediaInfo, or a remote probing service) would sit. The
// shipped MockSource simulates extraction from filename patterns so the rest
// of the pipeline can be exercised without demuxing binary media.
package probe

import (
	"context"

	"github.com/five82/mediaqc/internal/media"
)

// Source produces normalized metadata from a file on disk. Extraction may
// fail with an I/O or format error, which propagates as a pipeline failure
// for that file.
type Source interface {
	Extract(ctx context.Context, path string) (*media.Info, error)
}
