package tracker

import (
	"math"
	"sort"
)

// Hertz is a tone frequency
type Hertz uint32

// FrequencyTable maps notes to frequencies. It is immutable once built.
type FrequencyTable struct {
	freqs map[Note]Hertz
}

// NewFrequencyTable builds a table from a copy of m
func NewFrequencyTable(m map[Note]Hertz) *FrequencyTable {
	t := &FrequencyTable{freqs: make(map[Note]Hertz, len(m))}
	for n, hz := range m {
		t.freqs[n] = hz
	}
	return t
}

// Lookup returns the frequency of n and whether the table supports it.
// Zero entries are reported as unsupported.
func (t *FrequencyTable) Lookup(n Note) (Hertz, bool) {
	if t == nil {
		return 0, false
	}
	hz, ok := t.freqs[n]
	if !ok || hz == 0 {
		return 0, false
	}
	return hz, true
}

// With returns a new table with the overrides applied on top of t
func (t *FrequencyTable) With(overrides map[Note]Hertz) *FrequencyTable {
	merged := make(map[Note]Hertz, len(overrides))
	if t != nil {
		for n, hz := range t.freqs {
			merged[n] = hz
		}
	}
	for n, hz := range overrides {
		merged[n] = hz
	}
	return &FrequencyTable{freqs: merged}
}

// Len returns the number of entries
func (t *FrequencyTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.freqs)
}

// Notes returns the supported notes in ascending pitch order
func (t *FrequencyTable) Notes() []Note {
	if t == nil {
		return nil
	}
	notes := make([]Note, 0, len(t.freqs))
	for n := range t.freqs {
		notes = append(notes, n)
	}
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].MIDIKey() < notes[j].MIDIKey()
	})
	return notes
}

// FrequencyOf resolves a note against the table. A missing entry is a
// configuration error.
func FrequencyOf(t *FrequencyTable, n Note) (Hertz, error) {
	hz, ok := t.Lookup(n)
	if !ok {
		return 0, &ConfigError{Kind: UnsupportedNote, Channel: -1, Step: -1, Note: n}
	}
	return hz, nil
}

// relayTuning is the hand-tuned table of the relay board firmware. The
// relays respond late, so several entries are far from concert pitch.
var relayTuning = map[Note]Hertz{
	{C, 3}: 330, {C, 4}: 523, {C, 5}: 1045,
	{D, 3}: 294, {D, 4}: 587, {D, 5}: 1174,
	{E, 3}: 330, {E, 4}: 659,
	{F, 3}: 350, {F, 4}: 698,
	{Fs, 3}: 371, {Fs, 4}: 745,
	{G, 3}: 393, {G, 4}: 784,
	{A, 3}: 440, {A, 4}: 880,
	{B, 3}: 394, {B, 4}: 989,
}

// RelayTuning returns the table used by the relay board firmware
func RelayTuning() *FrequencyTable {
	return NewFrequencyTable(relayTuning)
}

// EqualTemperament returns a 12-TET table for octaves lo..hi with A4 at a4 Hz
func EqualTemperament(lo, hi int, a4 float64) *FrequencyTable {
	m := make(map[Note]Hertz)
	for oct := lo; oct <= hi; oct++ {
		for p := C; p < numPitches; p++ {
			n := Note{Pitch: p, Octave: oct}
			// A4 = MIDI 69
			hz := a4 * math.Pow(2.0, float64(n.MIDIKey()-69)/12.0)
			if r := math.Round(hz); r >= 1 {
				m[n] = Hertz(r)
			}
		}
	}
	return NewFrequencyTable(m)
}
