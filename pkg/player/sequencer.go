package player

import (
	"context"
	"fmt"

	"github.com/oisee/relaymusic/pkg/tracker"
)

// Sequencer polls the shared duration clock once per iteration and hands
// the same reading to every channel.
type Sequencer struct {
	clock   Clock
	players []*NotePlayer
}

// NewSequencer creates a sequencer over already constructed players
func NewSequencer(clock Clock, players ...*NotePlayer) *Sequencer {
	return &Sequencer{clock: clock, players: players}
}

// Build validates the whole song and creates one player per channel.
// hw must have one entry per song channel.
func Build(song *tracker.Song, clock Clock, hw []Hardware) (*Sequencer, error) {
	if err := tracker.Validate(song); err != nil {
		return nil, err
	}
	if len(hw) != len(song.Channels) {
		return nil, fmt.Errorf("song has %d channels but %d hardware channels were given", len(song.Channels), len(hw))
	}

	players := make([]*NotePlayer, len(song.Channels))
	for ch, track := range song.Channels {
		p, err := NewNotePlayer(track, song.Tuning, hw[ch].Pin, hw[ch].Timer)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", ch+1, err)
		}
		players[ch] = p
	}
	return NewSequencer(clock, players...), nil
}

// Step runs one loop iteration and returns the clock reading it used
func (s *Sequencer) Step() bool {
	elapsed := s.clock.Elapsed()
	for _, p := range s.players {
		p.Tick(elapsed)
	}
	return elapsed
}

// Run loops until ctx is cancelled. On the relay board ctx is never
// cancelled and Run does not return.
func (s *Sequencer) Run(ctx context.Context) {
	done := ctx.Done()
	for {
		select {
		case <-done:
			return
		default:
		}
		s.Step()
	}
}

// Players returns the channel players in channel order
func (s *Sequencer) Players() []*NotePlayer {
	return s.players
}

// Status returns a snapshot of every channel
func (s *Sequencer) Status() []Status {
	out := make([]Status, len(s.players))
	for i, p := range s.players {
		out[i] = p.Status()
	}
	return out
}
