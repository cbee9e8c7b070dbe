package audio

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// speakerSink drives the gopxl/beep speaker. All sources are resampled to
// one fixed output rate so that a single speaker initialization serves
// every file; the resample ratio doubles as the playback speed control.
type speakerSink struct {
	sampleRate beep.SampleRate

	ctrl      *beep.Ctrl
	volume    *effects.Volume
	resampler *beep.Resampler
	seeker    beep.StreamSeeker
	format    beep.Format
	closer    func() error

	vol     float64
	speed   float64
	drained atomic.Bool
}

// NewSpeakerSink initializes the hardware output at the given sample rate.
func NewSpeakerSink(sampleRate int) (Sink, error) {
	sr := beep.SampleRate(sampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("failed to initialize speaker: %w", err)
	}

	s := &speakerSink{
		sampleRate: sr,
		vol:        1.0,
		speed:      1.0,
	}
	s.drained.Store(true)
	return s, nil
}

func (s *speakerSink) Append(src Source, done func()) {
	// One source at a time; drop anything still queued.
	if !s.Empty() {
		s.Stop()
	}

	baseRatio := float64(src.Format.SampleRate) / float64(s.sampleRate)
	s.resampler = beep.ResampleRatio(4, baseRatio*s.speed, src.Streamer)
	s.ctrl = &beep.Ctrl{Streamer: s.resampler, Paused: true}
	s.volume = &effects.Volume{
		Streamer: s.ctrl,
		Base:     2,
		Volume:   volumeExponent(s.vol),
		Silent:   s.vol == 0,
	}
	s.seeker = src.Seeker
	s.format = src.Format
	s.closer = src.Closer
	s.drained.Store(false)

	speaker.Play(beep.Seq(s.volume, beep.Callback(func() {
		s.drained.Store(true)
		if done != nil {
			done()
		}
	})))
}

func (s *speakerSink) Play() {
	if s.ctrl == nil {
		return
	}
	speaker.Lock()
	s.ctrl.Paused = false
	speaker.Unlock()
}

func (s *speakerSink) Pause() {
	if s.ctrl == nil {
		return
	}
	speaker.Lock()
	s.ctrl.Paused = true
	speaker.Unlock()
}

func (s *speakerSink) Stop() {
	speaker.Clear()
	if s.closer != nil {
		_ = s.closer()
	}
	s.ctrl = nil
	s.volume = nil
	s.resampler = nil
	s.seeker = nil
	s.closer = nil
	s.drained.Store(true)
}

func (s *speakerSink) SetVolume(v float64) {
	s.vol = clampVolume(v)
	if s.volume == nil {
		return
	}
	speaker.Lock()
	s.volume.Volume = volumeExponent(s.vol)
	s.volume.Silent = s.vol == 0
	speaker.Unlock()
}

func (s *speakerSink) SetSpeed(sp float64) {
	s.speed = clampSpeed(sp)
	if s.resampler == nil {
		return
	}
	baseRatio := float64(s.format.SampleRate) / float64(s.sampleRate)
	speaker.Lock()
	s.resampler.SetRatio(baseRatio * s.speed)
	speaker.Unlock()
}

func (s *speakerSink) TrySeek(pos time.Duration) error {
	if s.seeker == nil {
		return ErrSeekNotSupported
	}

	speaker.Lock()
	defer speaker.Unlock()

	n := s.format.SampleRate.N(pos)
	if total := s.seeker.Len(); n > total {
		n = total
	}
	if err := s.seeker.Seek(n); err != nil {
		return fmt.Errorf("native seek to %v failed: %w", pos, err)
	}
	return nil
}

func (s *speakerSink) Empty() bool {
	return s.ctrl == nil || s.drained.Load()
}

// volumeExponent maps a linear volume in (0, 1] onto the exponent used by
// effects.Volume with base 2, so the perceived multiplier equals v.
func volumeExponent(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Log2(v)
}
