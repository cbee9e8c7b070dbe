package audio

import (
	"log/slog"
	"slices"
	"sync"
)

// Manager wraps one Engine with a FIFO play queue and a current-track
// slot. The queue belongs exclusively to the Manager; nothing else ever
// mutates it.
type Manager struct {
	mu      sync.Mutex
	engine  *Engine
	current *Track
	queue   []Track
}

func NewManager(engine *Engine) *Manager {
	return &Manager{engine: engine}
}

// PlayTrackNow loads the track into the engine, replacing whatever is
// current, and clears the queue: a request to play a specific item
// pre-empts the playlist rather than being appended after it.
func (m *Manager) PlayTrackNow(track Track) error {
	if err := m.engine.Load(track.Path); err != nil {
		return err
	}

	m.mu.Lock()
	m.current = &track
	m.queue = nil
	m.mu.Unlock()

	slog.Info("track loaded", "title", track.Title, "file", track.Path)
	return nil
}

// Play starts or resumes the loaded track. Failures propagate unmodified:
// no reload-and-retry here, since a reload resets the synthetic clock and
// would corrupt position tracking on a merely transient failure.
func (m *Manager) Play() error {
	return m.engine.Play()
}

func (m *Manager) Pause() {
	m.engine.Pause()
}

func (m *Manager) Stop() {
	m.engine.Stop()
}

func (m *Manager) Seek(positionSeconds float64) error {
	return m.engine.Seek(positionSeconds)
}

// Restart rewinds the current track to the beginning.
func (m *Manager) Restart() error {
	return m.engine.Seek(0)
}

func (m *Manager) SetVolume(v float64) {
	m.engine.SetVolume(v)
}

func (m *Manager) SetSpeed(s float64) {
	m.engine.SetSpeed(s)
}

func (m *Manager) Status() Status {
	return m.engine.Status()
}

// Info returns the metadata of the loaded source.
func (m *Manager) Info() Info {
	return m.engine.Info()
}

// Done exposes the engine's playback-finished signal.
func (m *Manager) Done() <-chan struct{} {
	return m.engine.Done()
}

// AddToQueue appends a track to the tail of the queue without touching
// current playback.
func (m *Manager) AddToQueue(track Track) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, track)
}

// AddAllToQueue appends tracks in order.
func (m *Manager) AddAllToQueue(tracks []Track) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, tracks...)
}

// PlayNext pops the head of the queue and plays it immediately,
// preserving the remainder of the queue. It returns false with nothing
// loaded when the queue is empty; this is how exhausted playback
// advances.
func (m *Manager) PlayNext() (bool, error) {
	m.mu.Lock()
	if len(m.queue) == 0 {
		m.mu.Unlock()
		slog.Debug("queue exhausted")
		return false, nil
	}
	next := m.queue[0]
	rest := slices.Clone(m.queue[1:])
	m.mu.Unlock()

	// PlayTrackNow clears the queue as part of its pre-emption policy, so
	// the remainder is restored afterwards.
	if err := m.PlayTrackNow(next); err != nil {
		return false, err
	}

	m.mu.Lock()
	m.queue = rest
	m.mu.Unlock()
	return true, nil
}

// CurrentTrack returns the occupant of the current-track slot.
func (m *Manager) CurrentTrack() (Track, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return Track{}, false
	}
	return *m.current, true
}

// Queue returns a snapshot of the pending queue.
func (m *Manager) Queue() []Track {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.queue)
}

// ClearQueue resets the queue without touching playback.
func (m *Manager) ClearQueue() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = nil
}
