package audio

import (
	"time"

	"github.com/gopxl/beep/v2"
)

// fakeSink simulates the asynchronous decode/append pipeline: after an
// Append it keeps reporting empty for fillDelay Empty() calls, which
// exercises the engine's bounded confirmation polling.
type fakeSink struct {
	fillDelay int  // Empty() calls reporting empty after each Append
	neverFill bool // simulate a source that never reaches the sink

	appended []Source
	doneFns  []func()
	pending  int
	content  bool

	playCalls  int
	pauseCalls int
	stopCalls  int

	volume float64
	speed  float64

	seekErr error
	sought  []time.Duration
}

func newFakeSink() *fakeSink {
	return &fakeSink{volume: 1.0, speed: 1.0}
}

func (s *fakeSink) Append(src Source, done func()) {
	s.appended = append(s.appended, src)
	s.doneFns = append(s.doneFns, done)
	s.pending = s.fillDelay
	s.content = !s.neverFill
}

func (s *fakeSink) Play() {
	s.playCalls++
}

func (s *fakeSink) Pause() {
	s.pauseCalls++
}

func (s *fakeSink) Stop() {
	s.stopCalls++
	s.content = false
}

func (s *fakeSink) SetVolume(v float64) {
	s.volume = clampVolume(v)
}

func (s *fakeSink) SetSpeed(sp float64) {
	s.speed = clampSpeed(sp)
}

func (s *fakeSink) TrySeek(pos time.Duration) error {
	if s.seekErr != nil {
		return s.seekErr
	}
	s.sought = append(s.sought, pos)
	return nil
}

func (s *fakeSink) Empty() bool {
	if !s.content {
		return true
	}
	if s.pending > 0 {
		s.pending--
		return true
	}
	return false
}

// finish simulates the queued source playing to exhaustion.
func (s *fakeSink) finish() {
	s.content = false
	if n := len(s.doneFns); n > 0 && s.doneFns[n-1] != nil {
		s.doneFns[n-1]()
	}
}

// fakeClock is a manually advanced clock for deterministic position math.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func testConfig() Config {
	return Config{
		LoadAttempts:     5,
		LoadPollInterval: time.Millisecond,
		PlayRetryDelay:   time.Millisecond,
		SeekAttempts:     5,
		SeekPollInterval: time.Millisecond,
	}
}

func testSource() Source {
	return Source{
		Format: beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2},
		Closer: func() error { return nil },
	}
}

// newTestEngine wires an engine to the fake sink and clock, with decode
// and metadata extraction stubbed out.
func newTestEngine(sink Sink, clock *fakeClock) *Engine {
	e := NewEngine(sink, testConfig())
	e.now = clock.now
	e.open = func(string) (Source, error) { return testSource(), nil }
	e.read = func(string) (Info, error) {
		return Info{Duration: 10 * time.Minute, SampleRate: 44100, Channels: 2}, nil
	}
	return e
}
