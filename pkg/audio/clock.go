// Package audio simulates the relay board in software: sample-driven timers,
// relays rendered as square waves, realtime output and WAV export.
package audio

import (
	"math"
	"time"

	"github.com/oisee/relaymusic/pkg/tracker"
)

// SampleClock counts rendered samples. All timers of one engine share it.
type SampleClock struct {
	now  uint64
	rate int
}

// NewSampleClock creates a clock ticking sampleRate times per second
func NewSampleClock(sampleRate int) *SampleClock {
	return &SampleClock{rate: sampleRate}
}

// Advance moves the clock forward by one sample
func (c *SampleClock) Advance() {
	c.now++
}

// Now returns the current sample index
func (c *SampleClock) Now() uint64 {
	return c.now
}

// Rate returns the sample rate
func (c *SampleClock) Rate() int {
	return c.rate
}

// Elapsed returns the time represented by the samples counted so far
func (c *SampleClock) Elapsed() time.Duration {
	return time.Duration(float64(c.now) / float64(c.rate) * float64(time.Second))
}

// Countdown is a periodic countdown timer on a SampleClock. It implements
// both the per-channel frequency timer and the shared duration clock.
type Countdown struct {
	clock    *SampleClock
	period   float64 // in samples
	deadline float64
	running  bool
}

// NewCountdown creates a stopped countdown on clock
func NewCountdown(clock *SampleClock) *Countdown {
	return &Countdown{clock: clock}
}

// Start programs the half-period of a square wave at hz
func (t *Countdown) Start(hz tracker.Hertz) {
	t.StartRate(2 * float64(hz))
}

// StartRate programs a period of 1/hz seconds, counted from now.
// A non-positive rate stops the countdown.
func (t *Countdown) StartRate(hz float64) {
	if hz <= 0 {
		t.running = false
		return
	}
	t.period = float64(t.clock.rate) / hz
	t.deadline = float64(t.clock.now) + t.period
	t.running = true
}

// Elapsed reports whether the deadline has passed since the last true
// result. Several missed periods count as one elapse.
func (t *Countdown) Elapsed() bool {
	if !t.running {
		return false
	}
	now := float64(t.clock.now)
	if now < t.deadline {
		return false
	}
	missed := math.Floor((now - t.deadline) / t.period)
	t.deadline += (missed + 1) * t.period
	return true
}

// Period returns the programmed period
func (t *Countdown) Period() time.Duration {
	if !t.running {
		return 0
	}
	return time.Duration(t.period / float64(t.clock.rate) * float64(time.Second))
}
