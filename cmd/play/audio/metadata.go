package audio

import (
	"fmt"
	"os"
	"time"

	"github.com/dhowden/tag"
)

// Info is derived, read-only metadata about a loaded source, produced
// once per load and cached until the next load. Zero values mean unknown.
type Info struct {
	Title      string
	Artist     string
	Album      string
	Duration   time.Duration
	SampleRate int
	Channels   int
	Bitrate    int // kbps, estimated from file size and duration
	FileSize   int64
}

// ReadInfo extracts metadata from a local audio file. Extraction is best
// effort: whatever could be determined is returned alongside the first
// error encountered, so callers can degrade to partial info.
func ReadInfo(path string) (Info, error) {
	var info Info

	st, err := os.Stat(path)
	if err != nil {
		return info, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	info.FileSize = st.Size()

	f, err := os.Open(path)
	if err != nil {
		return info, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var firstErr error
	if meta, err := tag.ReadFrom(f); err == nil {
		info.Title = meta.Title()
		info.Artist = meta.Artist()
		info.Album = meta.Album()
	} else {
		firstErr = fmt.Errorf("no readable tags in %s: %w", path, err)
	}

	// The decoder is the authority on format and duration; tags are not.
	src, err := openSource(path)
	if err != nil {
		if firstErr == nil {
			firstErr = err
		}
		return info, firstErr
	}
	defer func() { _ = src.Closer() }()

	info.SampleRate = int(src.Format.SampleRate)
	info.Channels = src.Format.NumChannels
	if src.Seeker != nil {
		info.Duration = src.Format.SampleRate.D(src.Seeker.Len())
	}

	if secs := info.Duration / time.Second; secs > 0 {
		info.Bitrate = int(info.FileSize * 8 / int64(secs) / 1000)
	}

	return info, firstErr
}
