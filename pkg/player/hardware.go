// Package player implements per-channel note playback and the sequencer loop
// that keeps channels aligned to one shared duration clock.
package player

import "github.com/oisee/relaymusic/pkg/tracker"

// OutputPin is a write-only digital output driving one relay.
// Writes are fire-and-forget; a lost edge only degrades the sound.
type OutputPin interface {
	SetHigh()
	SetLow()
}

// FrequencyTimer is a per-channel periodic countdown.
type FrequencyTimer interface {
	// Start reprograms the countdown to the half-period 1/(2*hz).
	Start(hz tracker.Hertz)
	// Elapsed reports, without blocking, whether a period has elapsed
	// since the last call that returned true.
	Elapsed() bool
}

// Clock is the shared coarse duration clock, one tick per sixteenth.
type Clock interface {
	Elapsed() bool
}

// Hardware is the pair of capabilities owned by one channel
type Hardware struct {
	Pin   OutputPin
	Timer FrequencyTimer
}
