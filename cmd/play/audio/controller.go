package audio

// Controller serializes all access to a Manager through a single owning
// goroutine. Engine and Manager internals are not safe for concurrent
// invocation, and the synthetic clock additionally requires operations to
// apply in the order callers issue them; routing every call through one
// command channel gives both properties without any global thread-affinity
// state. Callers never hold a direct Manager reference.
//
// Commands execute strictly in arrival order and each call blocks until
// its reply arrives, so a Status read between two other calls always
// observes a whole prefix of completed operations.
type Controller struct {
	mgr  *Manager
	cmds chan func()
	done chan struct{}
}

// NewController starts the owning goroutine for the given manager.
func NewController(mgr *Manager) *Controller {
	c := &Controller{
		mgr:  mgr,
		cmds: make(chan func(), 16),
		done: make(chan struct{}),
	}
	go c.run()
	return c
}

func (c *Controller) run() {
	defer close(c.done)
	for cmd := range c.cmds {
		cmd()
	}
}

// Close stops the owning goroutine after draining queued commands.
// No methods may be called after Close.
func (c *Controller) Close() {
	close(c.cmds)
	<-c.done
}

// dispatch runs f on the owning goroutine and returns its result over a
// reply conduit.
func dispatch[T any](c *Controller, f func(*Manager) T) T {
	reply := make(chan T, 1)
	c.cmds <- func() {
		reply <- f(c.mgr)
	}
	return <-reply
}

func (c *Controller) PlayTrackNow(track Track) error {
	return dispatch(c, func(m *Manager) error { return m.PlayTrackNow(track) })
}

func (c *Controller) Play() error {
	return dispatch(c, func(m *Manager) error { return m.Play() })
}

func (c *Controller) Pause() {
	dispatch(c, func(m *Manager) struct{} { m.Pause(); return struct{}{} })
}

func (c *Controller) Stop() {
	dispatch(c, func(m *Manager) struct{} { m.Stop(); return struct{}{} })
}

func (c *Controller) Seek(positionSeconds float64) error {
	return dispatch(c, func(m *Manager) error { return m.Seek(positionSeconds) })
}

func (c *Controller) Restart() error {
	return dispatch(c, func(m *Manager) error { return m.Restart() })
}

func (c *Controller) SetVolume(v float64) {
	dispatch(c, func(m *Manager) struct{} { m.SetVolume(v); return struct{}{} })
}

func (c *Controller) SetSpeed(s float64) {
	dispatch(c, func(m *Manager) struct{} { m.SetSpeed(s); return struct{}{} })
}

func (c *Controller) Status() Status {
	return dispatch(c, func(m *Manager) Status { return m.Status() })
}

func (c *Controller) Info() Info {
	return dispatch(c, func(m *Manager) Info { return m.Info() })
}

func (c *Controller) AddToQueue(track Track) {
	dispatch(c, func(m *Manager) struct{} { m.AddToQueue(track); return struct{}{} })
}

func (c *Controller) AddAllToQueue(tracks []Track) {
	dispatch(c, func(m *Manager) struct{} { m.AddAllToQueue(tracks); return struct{}{} })
}

func (c *Controller) PlayNext() (bool, error) {
	type result struct {
		ok  bool
		err error
	}
	r := dispatch(c, func(m *Manager) result {
		ok, err := m.PlayNext()
		return result{ok, err}
	})
	return r.ok, r.err
}

func (c *Controller) CurrentTrack() (Track, bool) {
	type result struct {
		track Track
		ok    bool
	}
	r := dispatch(c, func(m *Manager) result {
		t, ok := m.CurrentTrack()
		return result{t, ok}
	})
	return r.track, r.ok
}

func (c *Controller) Queue() []Track {
	return dispatch(c, func(m *Manager) []Track { return m.Queue() })
}

func (c *Controller) ClearQueue() {
	dispatch(c, func(m *Manager) struct{} { m.ClearQueue(); return struct{}{} })
}

// Done is safe to select on from any goroutine; the channel itself is
// owned by the engine.
func (c *Controller) Done() <-chan struct{} {
	return c.mgr.Done()
}
