package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// openSource opens and decodes a local audio file, selecting the decoder
// by file extension.
func openSource(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return Source{}, fmt.Errorf("failed to open audio file %s: %w", path, err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	case ".ogg", ".oga":
		streamer, format, err = vorbis.Decode(f)
	default:
		_ = f.Close()
		return Source{}, fmt.Errorf("%w: unsupported extension %q", ErrDecodeFailed, filepath.Ext(path))
	}
	if err != nil {
		_ = f.Close()
		return Source{}, fmt.Errorf("%w: %s: %v", ErrDecodeFailed, path, err)
	}

	return Source{
		Streamer: streamer,
		Seeker:   streamer,
		Closer:   streamer.Close,
		Format:   format,
	}, nil
}

// skipped wraps a source so that the given lead-in is discarded before any
// samples pass through. Used by the reload-based seek fallback for streams
// that cannot reposition natively; the result itself is no longer seekable.
func skipped(src Source, offset time.Duration) Source {
	if offset <= 0 {
		return src
	}
	return Source{
		Streamer: &skipStreamer{
			wrapped:   src.Streamer,
			remaining: src.Format.SampleRate.N(offset),
		},
		Seeker: nil,
		Closer: src.Closer,
		Format: src.Format,
	}
}

// skipStreamer drains and discards a fixed number of samples from the
// wrapped streamer on first use, then passes everything through.
type skipStreamer struct {
	wrapped   beep.Streamer
	remaining int
}

func (s *skipStreamer) Stream(samples [][2]float64) (int, bool) {
	var scratch [512][2]float64
	for s.remaining > 0 {
		chunk := min(s.remaining, len(scratch))
		n, ok := s.wrapped.Stream(scratch[:chunk])
		s.remaining -= n
		if !ok {
			s.remaining = 0
			if n == 0 {
				return 0, false
			}
		}
	}
	return s.wrapped.Stream(samples)
}

func (s *skipStreamer) Err() error {
	return s.wrapped.Err()
}
