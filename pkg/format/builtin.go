package format

import (
	"sort"

	"github.com/oisee/relaymusic/pkg/tracker"
)

var builtins = map[string]func() *tracker.Song{
	"ode-to-joy": OdeToJoy,
}

// Builtin returns a fresh copy of a built-in song
func Builtin(name string) (*tracker.Song, bool) {
	fn, ok := builtins[name]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// BuiltinNames lists the built-in songs
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func steps(d tracker.Duration, notes ...tracker.Note) tracker.Track {
	t := make(tracker.Track, len(notes))
	for i, note := range notes {
		t[i] = tracker.Step{Note: note, Duration: d}
	}
	return t
}

func n(p tracker.Pitch, octave int) tracker.Note {
	return tracker.Note{Pitch: p, Octave: octave}
}

// OdeToJoy is the four-relay arrangement the board shipped with
func OdeToJoy() *tracker.Song {
	const (
		q = tracker.Quarter
		e = tracker.Eighth
		h = tracker.Half
		w = tracker.Whole
	)
	melody := steps(q,
		n(tracker.B, 4), n(tracker.B, 4), n(tracker.C, 5), n(tracker.D, 5),
		n(tracker.D, 5), n(tracker.C, 5), n(tracker.B, 4), n(tracker.A, 4),
		n(tracker.G, 4), n(tracker.G, 4), n(tracker.A, 4), n(tracker.B, 4),
	)
	melody = append(melody,
		tracker.Step{Note: n(tracker.B, 4), Duration: e},
		tracker.Step{Note: n(tracker.A, 4), Duration: e},
		tracker.Step{Note: n(tracker.A, 4), Duration: h},
	)

	pedal := append(steps(w, n(tracker.D, 4), n(tracker.D, 4), n(tracker.D, 4)),
		steps(h, n(tracker.D, 4), n(tracker.D, 4))...)
	tenor := append(steps(w, n(tracker.B, 3), n(tracker.A, 3), n(tracker.B, 3)),
		steps(h, n(tracker.B, 3), n(tracker.A, 3))...)
	bass := append(steps(w, n(tracker.G, 3), n(tracker.Fs, 3), n(tracker.G, 3)),
		steps(h, n(tracker.G, 3), n(tracker.Fs, 3))...)

	song := tracker.NewSong("Ode to Joy", melody, pedal, tenor, bass)
	song.Author = "Ludwig van Beethoven"
	return song
}
