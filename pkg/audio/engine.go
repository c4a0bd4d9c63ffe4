package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/oisee/relaymusic/pkg/player"
	"github.com/oisee/relaymusic/pkg/tracker"
)

// DefaultSampleRate is used when no rate is configured
const DefaultSampleRate = 44100

// Engine runs the sequencer against simulated hardware, one loop iteration
// per audio sample, and mixes the relays down to mono.
type Engine struct {
	Song       *tracker.Song
	SampleRate int
	Volume     float64 // Master volume 0.0-1.0

	clock    *SampleClock
	duration *Countdown
	relays   []*Relay
	seq      *player.Sequencer

	mu sync.Mutex
}

// NewEngine validates the song and wires one relay and timer per channel
func NewEngine(song *tracker.Song, sampleRate int) (*Engine, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}

	clock := NewSampleClock(sampleRate)
	duration := NewCountdown(clock)
	duration.StartRate(song.TickRate)

	relays := make([]*Relay, len(song.Channels))
	hw := make([]player.Hardware, len(song.Channels))
	for i := range hw {
		relays[i] = &Relay{}
		hw[i] = player.Hardware{Pin: relays[i], Timer: NewCountdown(clock)}
	}

	seq, err := player.Build(song, duration, hw)
	if err != nil {
		return nil, err
	}

	return &Engine{
		Song:       song,
		SampleRate: sampleRate,
		Volume:     0.5,
		clock:      clock,
		duration:   duration,
		relays:     relays,
		seq:        seq,
	}, nil
}

// GenerateSamples renders len(buffer) samples (-1.0 to 1.0)
func (e *Engine) GenerateSamples(buffer []float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	numCh := float64(len(e.relays))
	for i := range buffer {
		e.seq.Step()

		var sample float64
		for _, r := range e.relays {
			sample += r.Sample()
		}
		e.clock.Advance()

		// Mix down with headroom
		if numCh > 1 {
			sample /= math.Sqrt(numCh)
		}
		sample *= e.Volume

		// Soft limiter (tanh-style) to avoid hard clipping
		if sample > 0.9 {
			sample = 0.9 + 0.1*math.Tanh((sample-0.9)*10)
		} else if sample < -0.9 {
			sample = -0.9 + 0.1*math.Tanh((sample+0.9)*10)
		}

		buffer[i] = sample
	}
}

// Status returns a snapshot of every channel
func (e *Engine) Status() []player.Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seq.Status()
}

// Levels returns the relay positions in channel order
func (e *Engine) Levels() []bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	levels := make([]bool, len(e.relays))
	for i, r := range e.relays {
		levels[i] = r.Level()
	}
	return levels
}

// Edges returns the relay edge counts in channel order
func (e *Engine) Edges() []uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	edges := make([]uint64, len(e.relays))
	for i, r := range e.relays {
		edges[i] = r.Edges()
	}
	return edges
}

// Position returns how much audio has been rendered
func (e *Engine) Position() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clock.Elapsed()
}

// TickPeriod returns the duration clock period
func (e *Engine) TickPeriod() time.Duration {
	return e.duration.Period()
}
