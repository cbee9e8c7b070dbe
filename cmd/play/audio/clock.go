package audio

import "time"

// playClock is the engine's synthetic elapsed-time bookkeeping, kept
// independent of any position reporting by the sink or decoder.
//
// Invariants: pauseTime is zero while playing and set while paused;
// pausedDur only grows, by the gap between a pause and the following
// resume; seekOffset is the baseline set by the last successful seek or
// load.
type playClock struct {
	startTime  time.Time
	pauseTime  time.Time
	pausedDur  time.Duration
	seekOffset time.Duration
}

func (c *playClock) reset() {
	c.startTime = time.Time{}
	c.pauseTime = time.Time{}
	c.pausedDur = 0
	c.seekOffset = 0
}

// rebase moves the clock baseline to a new offset, as after a seek.
func (c *playClock) rebase(offset time.Duration, now time.Time) {
	c.seekOffset = offset
	c.startTime = now
	c.pauseTime = time.Time{}
	c.pausedDur = 0
}

// fold banks the position accrued at the old speed into the baseline and
// restarts the active interval, so a subsequent speed change applies only
// prospectively. While paused, the new interval starts frozen.
func (c *playClock) fold(now time.Time, oldSpeed float64) {
	if c.startTime.IsZero() {
		return
	}
	c.seekOffset = c.position(now, oldSpeed)
	c.startTime = now
	c.pausedDur = 0
	if !c.pauseTime.IsZero() {
		c.pauseTime = now
	}
}

// position computes the elapsed playback position at the given speed.
// Elapsed time since start is measured against pauseTime while paused,
// otherwise against now. The speed multiplier covers the interval since
// the last rebase or fold only; fold keeps earlier intervals at the speed
// they actually played at.
func (c *playClock) position(now time.Time, speed float64) time.Duration {
	if c.startTime.IsZero() {
		return c.seekOffset
	}

	var elapsed time.Duration
	if !c.pauseTime.IsZero() {
		elapsed = c.pauseTime.Sub(c.startTime)
	} else {
		elapsed = now.Sub(c.startTime)
	}

	active := elapsed - c.pausedDur
	if active < 0 {
		active = 0
	}

	return c.seekOffset + time.Duration(float64(active)*speed)
}
