// Package tracker implements the song data model: notes, durations, tracks
package tracker

import (
	"fmt"
	"strconv"
	"strings"
)

// Pitch is a chromatic pitch class
type Pitch uint8

const (
	C Pitch = iota
	Cs
	D
	Ds
	E
	F
	Fs
	G
	Gs
	A
	As
	B
	numPitches
)

var pitchNames = [numPitches]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// String returns the sharp spelling of the pitch class
func (p Pitch) String() string {
	if p >= numPitches {
		return "?"
	}
	return pitchNames[p]
}

// Note is a pitch class plus octave
type Note struct {
	Pitch  Pitch
	Octave int
}

// String formats the note like "F#3"
func (n Note) String() string {
	return n.Pitch.String() + strconv.Itoa(n.Octave)
}

// MIDIKey returns the MIDI key number of the note (C4 = 60)
func (n Note) MIDIKey() int {
	return (n.Octave+1)*12 + int(n.Pitch)
}

// ParseNote converts a note name ("B4", "F#3", "Fs3") to a Note
func ParseNote(s string) (Note, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Note{}, fmt.Errorf("invalid note %q", s)
	}

	var pitch Pitch
	switch s[0] {
	case 'C', 'c':
		pitch = C
	case 'D', 'd':
		pitch = D
	case 'E', 'e':
		pitch = E
	case 'F', 'f':
		pitch = F
	case 'G', 'g':
		pitch = G
	case 'A', 'a':
		pitch = A
	case 'B', 'b':
		pitch = B
	default:
		return Note{}, fmt.Errorf("invalid pitch in note %q", s)
	}

	rest := s[1:]
	// Historic song data spells sharps with an "s" (Fs3)
	if rest[0] == '#' || rest[0] == 's' {
		if pitch == E || pitch == B {
			return Note{}, fmt.Errorf("no sharp for %s in note %q", pitch, s)
		}
		pitch++
		rest = rest[1:]
	}

	octave, err := strconv.Atoi(rest)
	if err != nil {
		return Note{}, fmt.Errorf("invalid octave in note %q: %w", s, err)
	}
	return Note{Pitch: pitch, Octave: octave}, nil
}

// Duration is a symbolic note length
type Duration uint8

const (
	Whole Duration = iota
	Half
	Quarter
	Eighth
	Sixteenth
)

// Ticks returns the length in sixteenth-note duration ticks.
// Values outside the closed set report 0 and fail validation.
func (d Duration) Ticks() int {
	switch d {
	case Whole:
		return 16
	case Half:
		return 8
	case Quarter:
		return 4
	case Eighth:
		return 2
	case Sixteenth:
		return 1
	default:
		return 0
	}
}

// String returns the fraction form ("1/4")
func (d Duration) String() string {
	switch d {
	case Whole:
		return "1/1"
	case Half:
		return "1/2"
	case Quarter:
		return "1/4"
	case Eighth:
		return "1/8"
	case Sixteenth:
		return "1/16"
	default:
		return "Duration(" + strconv.Itoa(int(d)) + ")"
	}
}

// ParseDuration accepts the fraction form or the English name
func ParseDuration(s string) (Duration, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1/1", "1", "whole":
		return Whole, nil
	case "1/2", "half":
		return Half, nil
	case "1/4", "quarter":
		return Quarter, nil
	case "1/8", "eighth":
		return Eighth, nil
	case "1/16", "sixteenth":
		return Sixteenth, nil
	}
	return 0, fmt.Errorf("invalid duration %q", s)
}

// Step is one (note, duration) entry of a track
type Step struct {
	Note     Note
	Duration Duration
}

// String formats the step like "B4 1/4"
func (s Step) String() string {
	return s.Note.String() + " " + s.Duration.String()
}

// ParseStep converts "B4 1/4" or "B4 quarter" to a Step
func ParseStep(s string) (Step, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Step{}, fmt.Errorf("step %q: want \"NOTE DURATION\"", s)
	}
	note, err := ParseNote(fields[0])
	if err != nil {
		return Step{}, fmt.Errorf("step %q: %w", s, err)
	}
	dur, err := ParseDuration(fields[1])
	if err != nil {
		return Step{}, fmt.Errorf("step %q: %w", s, err)
	}
	return Step{Note: note, Duration: dur}, nil
}

// Track is the cyclic melody of one channel. Playback never mutates it.
type Track []Step

// TotalTicks returns the length of one pass over the track in duration ticks
func (t Track) TotalTicks() int {
	total := 0
	for _, s := range t {
		total += s.Duration.Ticks()
	}
	return total
}

// Song is the full multi-channel melody
type Song struct {
	Title    string
	Author   string
	TickRate float64 // Duration clock rate in Hz (one tick = one sixteenth)
	Tuning   *FrequencyTable
	Channels []Track
}

// DefaultTickRate is the duration clock rate of the relay board firmware
const DefaultTickRate = 9.0

// NewSong creates a song with the relay tuning and default tick rate
func NewSong(title string, channels ...Track) *Song {
	return &Song{
		Title:    title,
		TickRate: DefaultTickRate,
		Tuning:   RelayTuning(),
		Channels: channels,
	}
}
