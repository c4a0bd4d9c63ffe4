// Package format loads and exports song data
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oisee/relaymusic/pkg/tracker"
)

// File is the on-disk song layout shared by the YAML and JSON forms.
// Each channel is a list of "NOTE DURATION" steps, e.g. "F#3 1/2".
type File struct {
	Title       string            `yaml:"title" json:"title"`
	Author      string            `yaml:"author,omitempty" json:"author,omitempty"`
	TickRate    float64           `yaml:"tickRate,omitempty" json:"tickRate,omitempty"`
	Tuning      string            `yaml:"tuning,omitempty" json:"tuning,omitempty"` // "relay" (default) or "equal"
	A4          float64           `yaml:"a4,omitempty" json:"a4,omitempty"`         // Concert pitch for equal tuning
	Frequencies map[string]uint32 `yaml:"frequencies,omitempty" json:"frequencies,omitempty"`
	Channels    [][]string        `yaml:"channels" json:"channels"`
}

// Tuning names
const (
	TuningRelay = "relay"
	TuningEqual = "equal"
)

// Load parses a song as JSON, falling back to YAML, and validates it
func Load(r io.Reader) (*tracker.Song, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read song: %w", err)
	}

	var f File
	if errJSON := json.Unmarshal(data, &f); errJSON != nil {
		f = File{}
		if errYaml := yaml.Unmarshal(data, &f); errYaml != nil {
			return nil, fmt.Errorf("the song could not be parsed as .json (%v) or .yml (%v)", errJSON, errYaml)
		}
	}

	song, err := f.Song()
	if err != nil {
		return nil, err
	}
	if err := tracker.Validate(song); err != nil {
		return nil, err
	}
	return song, nil
}

// LoadFile loads and validates a song file
func LoadFile(path string) (*tracker.Song, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open song: %w", err)
	}
	defer file.Close()

	song, err := Load(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return song, nil
}

// Song converts the file layout to a song. It reports syntax problems;
// playability is left to tracker.Validate.
func (f *File) Song() (*tracker.Song, error) {
	song := &tracker.Song{
		Title:    f.Title,
		Author:   f.Author,
		TickRate: f.TickRate,
	}
	if song.TickRate == 0 {
		song.TickRate = tracker.DefaultTickRate
	}

	switch f.Tuning {
	case "", TuningRelay:
		song.Tuning = tracker.RelayTuning()
	case TuningEqual:
		a4 := f.A4
		if a4 == 0 {
			a4 = 440
		}
		song.Tuning = tracker.EqualTemperament(0, 8, a4)
	default:
		return nil, fmt.Errorf("unknown tuning %q", f.Tuning)
	}

	if len(f.Frequencies) > 0 {
		overrides := make(map[tracker.Note]tracker.Hertz, len(f.Frequencies))
		for name, hz := range f.Frequencies {
			n, err := tracker.ParseNote(name)
			if err != nil {
				return nil, fmt.Errorf("frequencies: %w", err)
			}
			overrides[n] = tracker.Hertz(hz)
		}
		song.Tuning = song.Tuning.With(overrides)
	}

	song.Channels = make([]tracker.Track, len(f.Channels))
	for ch, steps := range f.Channels {
		track := make(tracker.Track, len(steps))
		for i, s := range steps {
			step, err := tracker.ParseStep(s)
			if err != nil {
				return nil, fmt.Errorf("channel %d step %d: %w", ch+1, i, err)
			}
			track[i] = step
		}
		song.Channels[ch] = track
	}
	return song, nil
}

// FromSong builds the file layout of a song. Frequencies are not written;
// the tuning name is supplied by the caller.
func FromSong(s *tracker.Song, tuning string) *File {
	f := &File{
		Title:    s.Title,
		Author:   s.Author,
		TickRate: s.TickRate,
		Tuning:   tuning,
		Channels: make([][]string, len(s.Channels)),
	}
	for ch, track := range s.Channels {
		steps := make([]string, len(track))
		for i, step := range track {
			steps[i] = step.String()
		}
		f.Channels[ch] = steps
	}
	return f
}

// WriteYAML writes the file layout as YAML
func (f *File) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("could not encode song: %w", err)
	}
	return enc.Close()
}
