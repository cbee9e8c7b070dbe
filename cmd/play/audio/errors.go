package audio

import "errors"

var (
	// ErrNoFileLoaded is returned by Play and Seek when nothing is loaded.
	ErrNoFileLoaded = errors.New("no audio file loaded")

	// ErrLoadTimeout is returned by Load when the sink never reported
	// queued content within the bounded retry budget.
	ErrLoadTimeout = errors.New("timed out waiting for audio to reach the sink")

	// ErrDecodeFailed is returned when a source cannot be demuxed or decoded.
	ErrDecodeFailed = errors.New("failed to decode audio file")

	// ErrSeekFailed is returned when both the native and the reload-based
	// seek paths failed.
	ErrSeekFailed = errors.New("seek failed")

	// ErrSeekNotSupported is reported by a Sink whose current stream cannot
	// be repositioned in place. It selects the reload-based seek fallback
	// and is never returned to callers of Engine.Seek.
	ErrSeekNotSupported = errors.New("in-place seek not supported for this stream")
)
