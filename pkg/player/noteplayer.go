package player

import (
	"fmt"

	"github.com/oisee/relaymusic/pkg/tracker"
)

// State is the half of the square wave a channel is in
type State uint8

const (
	Start State = iota // note loaded, timer not programmed yet
	High
	Low
)

func (s State) String() string {
	switch s {
	case Start:
		return "start"
	case High:
		return "high"
	case Low:
		return "low"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// resolved is a track step with its frequency looked up
type resolved struct {
	step  tracker.Step
	hz    tracker.Hertz
	ticks int
}

// NotePlayer plays one track on one relay
type NotePlayer struct {
	steps   []resolved
	pin     OutputPin
	timer   FrequencyTimer
	cursor  tracker.Cursor
	counter int
	state   State
}

// NewNotePlayer resolves every step of track against tuning. Any step that
// cannot be played is returned as a configuration error.
func NewNotePlayer(track tracker.Track, tuning *tracker.FrequencyTable, pin OutputPin, timer FrequencyTimer) (*NotePlayer, error) {
	if err := tracker.ValidateTrack(0, track, tuning); err != nil {
		return nil, err
	}
	steps := make([]resolved, len(track))
	for i, s := range track {
		hz, _ := tuning.Lookup(s.Note)
		steps[i] = resolved{step: s, hz: hz, ticks: s.Duration.Ticks()}
	}
	return &NotePlayer{
		steps:  steps,
		pin:    pin,
		timer:  timer,
		cursor: tracker.NewCursor(len(steps)),
		state:  Start,
	}, nil
}

// Tick advances the player by one sequencer iteration. durationElapsed is
// the shared clock reading for this iteration. Tick never blocks or fails.
func (p *NotePlayer) Tick(durationElapsed bool) {
	if p.state != Start && durationElapsed {
		p.counter++
		if p.counter == p.current().ticks {
			p.cursor = p.cursor.Next()
			p.counter = 0
			p.state = Start
		}
	}

	switch p.state {
	case Start:
		p.timer.Start(p.current().hz)
		p.pin.SetHigh()
		p.state = High
	case High:
		if p.timer.Elapsed() {
			p.pin.SetLow()
			p.state = Low
		}
	case Low:
		if p.timer.Elapsed() {
			p.pin.SetHigh()
			p.state = High
		}
	}
}

func (p *NotePlayer) current() resolved {
	return p.steps[p.cursor.Index()]
}

// State returns the current wave state
func (p *NotePlayer) State() State { return p.state }

// Index returns the position of the playing step
func (p *NotePlayer) Index() int { return p.cursor.Index() }

// Counter returns the duration ticks elapsed within the current step
func (p *NotePlayer) Counter() int { return p.counter }

// Len returns the track length
func (p *NotePlayer) Len() int { return len(p.steps) }

// Current returns the playing step
func (p *NotePlayer) Current() tracker.Step { return p.current().step }

// Frequency returns the frequency of the playing step
func (p *NotePlayer) Frequency() tracker.Hertz { return p.current().hz }

// Status is a value snapshot of a player
type Status struct {
	Step      tracker.Step
	Frequency tracker.Hertz
	Index     int
	Len       int
	Counter   int
	Ticks     int
	State     State
}

// Status returns a snapshot of the player
func (p *NotePlayer) Status() Status {
	cur := p.current()
	return Status{
		Step:      cur.step,
		Frequency: cur.hz,
		Index:     p.cursor.Index(),
		Len:       len(p.steps),
		Counter:   p.counter,
		Ticks:     cur.ticks,
		State:     p.state,
	}
}
