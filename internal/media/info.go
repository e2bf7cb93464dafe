package media

// Info is the full normalized metadata for one file: a general track that is
// always present, an optional video track (nil means the file has no video
// elementary stream), and ordered audio and subtitle track sequences.
// Stream-index labels ("Audio Stream #2") are 1-based positions within the
// respective sequence and stay stable for the life of the record.
type Info struct {
	General   *Track   `json:"general"`
	Video     *Track   `json:"video"`
	Audio     []*Track `json:"audio"`
	Subtitles []*Track `json:"subtitles"`
}

// Clone returns a deep copy of the metadata.
func (i *Info) Clone() *Info {
	if i == nil {
		return nil
	}
	c := &Info{
		General:   i.General.Clone(),
		Video:     i.Video.Clone(),
		Audio:     make([]*Track, len(i.Audio)),
		Subtitles: make([]*Track, len(i.Subtitles)),
	}
	for n, t := range i.Audio {
		c.Audio[n] = t.Clone()
	}
	for n, t := range i.Subtitles {
		c.Subtitles[n] = t.Clone()
	}
	return c
}

// Equal reports whether two metadata records are structurally identical.
func (i *Info) Equal(other *Info) bool {
	if i == nil || other == nil {
		return i == nil && other == nil
	}
	if !i.General.Equal(other.General) || !i.Video.Equal(other.Video) {
		return false
	}
	if len(i.Audio) != len(other.Audio) || len(i.Subtitles) != len(other.Subtitles) {
		return false
	}
	for n := range i.Audio {
		if !i.Audio[n].Equal(other.Audio[n]) {
			return false
		}
	}
	for n := range i.Subtitles {
		if !i.Subtitles[n].Equal(other.Subtitles[n]) {
			return false
		}
	}
	return true
}
