package audio

import (
	"errors"
	"testing"
)

func newTestManager() (*Manager, *fakeSink) {
	sink := newFakeSink()
	return NewManager(newTestEngine(sink, newFakeClock())), sink
}

func TestQueueIsFIFO(t *testing.T) {
	m, _ := newTestManager()

	a := NewTrack("a.mp3")
	b := NewTrack("b.mp3")
	m.AddToQueue(a)
	m.AddToQueue(b)

	ok, err := m.PlayNext()
	if err != nil || !ok {
		t.Fatalf("first PlayNext = %v, %v; want true, nil", ok, err)
	}
	if cur, _ := m.CurrentTrack(); cur.ID != a.ID {
		t.Errorf("first PlayNext loaded %q, want %q", cur.Title, a.Title)
	}

	ok, err = m.PlayNext()
	if err != nil || !ok {
		t.Fatalf("second PlayNext = %v, %v; want true, nil", ok, err)
	}
	if cur, _ := m.CurrentTrack(); cur.ID != b.ID {
		t.Errorf("second PlayNext loaded %q, want %q", cur.Title, b.Title)
	}

	ok, err = m.PlayNext()
	if err != nil {
		t.Fatalf("third PlayNext errored: %v", err)
	}
	if ok {
		t.Error("third PlayNext = true on an exhausted queue, want false")
	}
	if cur, _ := m.CurrentTrack(); cur.ID != b.ID {
		t.Error("exhausted PlayNext replaced the current track")
	}
}

func TestPlayTrackNowClearsQueue(t *testing.T) {
	m, _ := newTestManager()

	m.AddToQueue(NewTrack("a.mp3"))
	m.AddToQueue(NewTrack("b.mp3"))

	x := NewTrack("x.mp3")
	if err := m.PlayTrackNow(x); err != nil {
		t.Fatalf("PlayTrackNow failed: %v", err)
	}

	if q := m.Queue(); len(q) != 0 {
		t.Errorf("queue after PlayTrackNow has %d entries, want 0", len(q))
	}
	if cur, ok := m.CurrentTrack(); !ok || cur.ID != x.ID {
		t.Errorf("current track = %v/%v, want %q", cur, ok, x.Title)
	}
}

func TestPlayTrackNowFailureKeepsQueue(t *testing.T) {
	m, _ := newTestManager()
	m.engine.open = func(string) (Source, error) { return Source{}, ErrDecodeFailed }

	m.AddToQueue(NewTrack("a.mp3"))

	if err := m.PlayTrackNow(NewTrack("x.m4b")); !errors.Is(err, ErrDecodeFailed) {
		t.Fatalf("PlayTrackNow error = %v, want ErrDecodeFailed", err)
	}
	if q := m.Queue(); len(q) != 1 {
		t.Errorf("queue after failed PlayTrackNow has %d entries, want 1", len(q))
	}
}

func TestAddAllToQueuePreservesOrder(t *testing.T) {
	m, _ := newTestManager()

	tracks := []Track{NewTrack("1.mp3"), NewTrack("2.mp3"), NewTrack("3.mp3")}
	m.AddAllToQueue(tracks)

	q := m.Queue()
	if len(q) != 3 {
		t.Fatalf("queue has %d entries, want 3", len(q))
	}
	for i := range tracks {
		if q[i].ID != tracks[i].ID {
			t.Errorf("queue[%d] = %q, want %q", i, q[i].Title, tracks[i].Title)
		}
	}
}

func TestClearQueueLeavesPlaybackAlone(t *testing.T) {
	m, sink := newTestManager()

	if err := m.PlayTrackNow(NewTrack("x.mp3")); err != nil {
		t.Fatalf("PlayTrackNow failed: %v", err)
	}
	if err := m.Play(); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	m.AddToQueue(NewTrack("a.mp3"))

	stops := sink.stopCalls
	m.ClearQueue()

	if len(m.Queue()) != 0 {
		t.Error("queue not cleared")
	}
	if sink.stopCalls != stops {
		t.Error("ClearQueue touched the sink")
	}
	if st := m.Status(); st.State != StatePlaying {
		t.Errorf("state after ClearQueue = %v, want %v", st.State, StatePlaying)
	}
}

func TestManagerPlayDoesNotReload(t *testing.T) {
	m, sink := newTestManager()

	opens := 0
	m.engine.open = func(string) (Source, error) {
		opens++
		return testSource(), nil
	}

	if err := m.PlayTrackNow(NewTrack("x.mp3")); err != nil {
		t.Fatalf("PlayTrackNow failed: %v", err)
	}

	// Simulate the sink transiently losing its content: Play must fail
	// instead of reloading, since a reload would zero the clock.
	sink.content = false
	if err := m.Play(); !errors.Is(err, ErrNoFileLoaded) {
		t.Fatalf("Play error = %v, want ErrNoFileLoaded", err)
	}
	if opens != 1 {
		t.Errorf("file opened %d times, want 1 (no reload on play failure)", opens)
	}
}

func TestRestartSeeksToZero(t *testing.T) {
	m, sink := newTestManager()

	if err := m.PlayTrackNow(NewTrack("x.mp3")); err != nil {
		t.Fatalf("PlayTrackNow failed: %v", err)
	}
	if err := m.Restart(); err != nil {
		t.Fatalf("Restart failed: %v", err)
	}
	if len(sink.sought) != 1 || sink.sought[0] != 0 {
		t.Errorf("sink sought %v, want [0s]", sink.sought)
	}
}
