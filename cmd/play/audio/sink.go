package audio

import (
	"time"

	"github.com/gopxl/beep/v2"
)

// Source is one decoded audio stream ready for the sink. Seeker is nil
// when the stream cannot be repositioned in place (for example after the
// skip-forward wrapper has been applied), which forces the engine onto
// the reload-based seek path.
type Source struct {
	Streamer beep.Streamer
	Seeker   beep.StreamSeeker
	Closer   func() error
	Format   beep.Format
}

// Sink is the single hardware output channel. It holds at most one queued
// source at a time; Append replaces nothing and does not block, Stop drains
// whatever is queued so a subsequent Append starts clean.
//
// A Sink is not safe for concurrent use. The engine owns it exclusively
// and is itself driven from a single goroutine (see Controller).
type Sink interface {
	// Append queues a decoded source. done is invoked once the source has
	// played to exhaustion; it is never invoked for sources removed by Stop.
	Append(src Source, done func())

	Play()
	Pause()

	// Stop halts playback and drains any queued content.
	Stop()

	// SetVolume applies v immediately. Out-of-range values are clamped to
	// [0, 1], never rejected.
	SetVolume(v float64)

	// SetSpeed applies s immediately. Out-of-range values are clamped to
	// [0.25, 4.0], never rejected.
	SetSpeed(s float64)

	// TrySeek attempts in-place repositioning. It returns
	// ErrSeekNotSupported when the current stream cannot seek natively,
	// and other errors when a native seek was attempted and failed.
	TrySeek(pos time.Duration) error

	// Empty reports whether nothing remains queued or playing.
	Empty() bool
}

func clampVolume(v float64) float64 {
	return min(max(v, 0), 1)
}

func clampSpeed(s float64) float64 {
	return min(max(s, 0.25), 4.0)
}
