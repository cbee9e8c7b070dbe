package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Config holds the engine's bounded waiting windows. The defaults suit
// real hardware; tests shrink them for determinism.
type Config struct {
	// LoadAttempts and LoadPollInterval bound the confirmation loop after
	// an append: decode and queueing are asynchronous relative to the
	// caller, so Load polls until the sink reports content.
	LoadAttempts     int
	LoadPollInterval time.Duration

	// PlayRetryDelay is the single retry window Play grants an append that
	// is still in flight before giving up with ErrNoFileLoaded.
	PlayRetryDelay time.Duration

	// SeekAttempts and SeekPollInterval bound the refill wait of the
	// reload-based seek fallback.
	SeekAttempts     int
	SeekPollInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		LoadAttempts:     100,
		LoadPollInterval: 5 * time.Millisecond,
		PlayRetryDelay:   25 * time.Millisecond,
		SeekAttempts:     150,
		SeekPollInterval: 20 * time.Millisecond,
	}
}

// Engine multiplexes the audio sink, the identity of the loaded source and
// a synthetic clock that stays consistent across play, pause, stop, seek
// and speed changes.
//
// The mutex protects individual field accesses, but the clock invariants
// additionally require that operations apply in the order callers intend
// them. Engine is therefore meant to be driven from exactly one goroutine;
// the Controller provides that serialization for multi-goroutine hosts.
type Engine struct {
	mu   sync.Mutex
	cfg  Config
	sink Sink

	// Injection points for tests.
	now  func() time.Time
	open func(path string) (Source, error)
	read func(path string) (Info, error)

	currentFile string
	info        Info
	state       State
	volume      float64
	speed       float64
	clock       playClock

	finished chan struct{}
}

// NewEngine creates an engine around the given sink.
func NewEngine(sink Sink, cfg Config) *Engine {
	return &Engine{
		cfg:      cfg,
		sink:     sink,
		now:      time.Now,
		open:     openSource,
		read:     ReadInfo,
		state:    StateStopped,
		volume:   1.0,
		speed:    1.0,
		finished: make(chan struct{}, 1),
	}
}

// Done signals once each time a loaded source plays to exhaustion. Sources
// removed by Stop or by loading a replacement never signal.
func (e *Engine) Done() <-chan struct{} {
	return e.finished
}

func (e *Engine) signalDone() {
	select {
	case e.finished <- struct{}{}:
	default:
	}
}

// Load stops and drains the sink, decodes the file at path, queues it and
// blocks until the sink confirms content, within the bounded retry budget.
// Metadata extraction is best effort: failures degrade to defaults and
// never abort the load. The synthetic clock is reset; the engine ends up
// Stopped with position 0.
func (e *Engine) Load(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.sink.Stop()

	info, err := e.read(path)
	if err != nil {
		slog.Warn("metadata extraction failed, using defaults", "file", path, "error", err)
	}

	src, err := e.open(path)
	if err != nil {
		return err
	}

	e.sink.Append(src, e.signalDone)
	if err := e.waitForSink(e.cfg.LoadAttempts, e.cfg.LoadPollInterval); err != nil {
		return fmt.Errorf("%w: %s", err, path)
	}

	e.currentFile = path
	e.info = info
	e.state = StateStopped
	e.clock.reset()

	slog.Info("loaded audio file", "file", path, "duration", info.Duration)
	return nil
}

// waitForSink polls until the sink reports queued content, sleeping
// between attempts. Returns ErrLoadTimeout once the budget is spent.
func (e *Engine) waitForSink(attempts int, interval time.Duration) error {
	for i := 0; i < attempts; i++ {
		if !e.sink.Empty() {
			return nil
		}
		time.Sleep(interval)
	}
	if !e.sink.Empty() {
		return nil
	}
	return ErrLoadTimeout
}

// Play starts or resumes playback. An empty sink gets one retry after a
// short delay, since content can still be mid-append; after that Play
// fails with ErrNoFileLoaded.
func (e *Engine) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sink.Empty() {
		time.Sleep(e.cfg.PlayRetryDelay)
		if e.sink.Empty() {
			return ErrNoFileLoaded
		}
	}

	e.sink.Play()

	now := e.now()
	if !e.clock.pauseTime.IsZero() {
		e.clock.pausedDur += now.Sub(e.clock.pauseTime)
		e.clock.pauseTime = time.Time{}
	}
	if e.clock.startTime.IsZero() {
		e.clock.startTime = now
	}
	e.state = StatePlaying

	slog.Debug("playback started", "file", e.currentFile)
	return nil
}

// Pause pauses playback. It cannot fail; pausing anything other than
// active playback is a no-op.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StatePlaying {
		return
	}

	e.sink.Pause()
	e.clock.pauseTime = e.now()
	e.state = StatePaused
}

// Stop halts playback, drains the sink and zeroes the synthetic clock.
// It cannot fail.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.sink.Stop()
	e.clock.reset()
	e.state = StateStopped
}

// Seek moves the playback position. Positions below zero are clamped to
// zero. The native sink seek is tried first; when the stream cannot seek
// in place the engine falls back to reloading the file and skipping
// forward. A fallback that fails partway still terminates in a
// well-defined state: Stopped with the clock zeroed.
func (e *Engine) Seek(positionSeconds float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if positionSeconds < 0 {
		positionSeconds = 0
	}
	if e.currentFile == "" {
		return ErrNoFileLoaded
	}

	pos := time.Duration(positionSeconds * float64(time.Second))

	switch err := e.sink.TrySeek(pos); {
	case err == nil:
		e.clock.rebase(pos, e.now())
		slog.Debug("native seek", "position", pos)
		return nil
	case errors.Is(err, ErrSeekNotSupported):
		slog.Debug("native seek unsupported, reloading", "file", e.currentFile, "position", pos)
	default:
		slog.Warn("native seek failed, reloading", "file", e.currentFile, "position", pos, "error", err)
	}

	return e.seekByReload(pos)
}

// seekByReload reopens the current file, discards the lead-in and waits,
// time-boxed, for the sink to refill. Playback resumes only if the engine
// was playing when the seek began.
func (e *Engine) seekByReload(pos time.Duration) error {
	wasPlaying := e.state == StatePlaying

	e.sink.Stop()

	src, err := e.open(e.currentFile)
	if err != nil {
		e.clock.reset()
		e.state = StateStopped
		return fmt.Errorf("%w: reload: %v", ErrSeekFailed, err)
	}

	e.sink.Append(skipped(src, pos), e.signalDone)
	if err := e.waitForSink(e.cfg.SeekAttempts, e.cfg.SeekPollInterval); err != nil {
		e.clock.reset()
		e.state = StateStopped
		return fmt.Errorf("%w: sink never refilled after reload", ErrSeekFailed)
	}

	e.clock.rebase(pos, e.now())

	if wasPlaying {
		e.sink.Play()
		e.state = StatePlaying
	} else {
		e.state = StateStopped
	}

	slog.Debug("seek via reload", "file", e.currentFile, "position", pos, "resumed", wasPlaying)
	return nil
}

// SetVolume applies the volume to in-flight audio, silently clamping to
// [0, 1].
func (e *Engine) SetVolume(v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.volume = clampVolume(v)
	e.sink.SetVolume(e.volume)
}

// SetSpeed applies the playback speed to in-flight audio, silently
// clamping to [0.25, 4.0]. The new speed affects position computation
// prospectively only: position accrued so far is banked at the speed it
// actually played at.
func (e *Engine) SetSpeed(s float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.clock.fold(e.now(), e.speed)
	e.speed = clampSpeed(s)
	e.sink.SetSpeed(e.speed)
}

// Position returns the elapsed playback position. It is a pure function
// of the synthetic clock and the current speed and never touches the sink.
func (e *Engine) Position() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clock.position(e.now(), e.speed)
}

// Info returns the cached metadata of the loaded source.
func (e *Engine) Info() Info {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.info
}

// Status returns a read-only snapshot with no side effects.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Status{
		State:       e.state,
		Position:    uint64(e.clock.position(e.now(), e.speed) / time.Second),
		Duration:    uint64(e.info.Duration / time.Second),
		Volume:      e.volume,
		Speed:       e.speed,
		CurrentFile: e.currentFile,
	}
}
