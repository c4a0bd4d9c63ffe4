// Package config holds the command line configuration
package config

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/pflag"

	"github.com/oisee/relaymusic/pkg/tracker"
)

// Config is the runtime configuration. Everything is fixed at startup.
type Config struct {
	SongPath   string        // Song file (.yml or .json); empty uses Builtin
	Builtin    string        // Built-in song name
	SampleRate int           // Simulation and output sample rate
	TickRate   float64       // Duration clock override in Hz, 0 keeps the song's
	WAVPath    string        // Render to this WAV file instead of playing
	Length     time.Duration // Length rendered to WAV
	MIDIPath   string        // Export a Standard MIDI File
	Check      bool          // Validate only
	Dump       bool          // Dump the validated song
	Monitor    bool          // Show the terminal monitor while playing
	Version    bool
}

// Default returns a config with sensible defaults
func Default() *Config {
	return &Config{
		Builtin:    "ode-to-joy",
		SampleRate: 44100,
		Length:     30 * time.Second,
		Monitor:    true,
	}
}

// Bind registers the flags on fs with the current values as defaults
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&c.Builtin, "builtin", "b", c.Builtin, "built-in song to play when no file is given")
	fs.IntVarP(&c.SampleRate, "sample-rate", "r", c.SampleRate, "sample rate of the relay simulation")
	fs.Float64VarP(&c.TickRate, "tick-rate", "t", c.TickRate, "duration clock rate in Hz (0 keeps the song's)")
	fs.StringVarP(&c.WAVPath, "wav", "w", c.WAVPath, "render to a .wav file instead of playing")
	fs.DurationVarP(&c.Length, "length", "l", c.Length, "length of audio rendered with --wav")
	fs.StringVarP(&c.MIDIPath, "midi", "m", c.MIDIPath, "export the song as a Standard MIDI File")
	fs.BoolVarP(&c.Check, "check", "c", c.Check, "validate the song and exit")
	fs.BoolVarP(&c.Dump, "dump", "d", c.Dump, "dump the validated song")
	fs.BoolVar(&c.Monitor, "monitor", c.Monitor, "show the channel monitor while playing")
	fs.BoolVarP(&c.Version, "version", "v", c.Version, "print version")
}

// Parse binds the flags, parses args and takes the song path from the
// first positional argument
func (c *Config) Parse(fs *pflag.FlagSet, args []string) error {
	c.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	switch fs.NArg() {
	case 0:
	case 1:
		c.SongPath = fs.Arg(0)
	default:
		return fmt.Errorf("expected at most one song file, got %d", fs.NArg())
	}
	return c.Validate()
}

// Validate checks the values that do not depend on the song
func (c *Config) Validate() error {
	if c.SampleRate < 1000 || c.SampleRate > 192000 {
		return fmt.Errorf("sample rate %d out of range 1000-192000", c.SampleRate)
	}
	if c.TickRate < 0 || math.IsNaN(c.TickRate) || math.IsInf(c.TickRate, 0) {
		return fmt.Errorf("tick rate %v must be positive", c.TickRate)
	}
	if c.WAVPath != "" && c.Length <= 0 {
		return fmt.Errorf("render length %v must be positive", c.Length)
	}
	if c.SongPath == "" && c.Builtin == "" {
		return fmt.Errorf("no song given")
	}
	return nil
}

// Apply applies startup overrides to the song
func (c *Config) Apply(song *tracker.Song) {
	if c.TickRate > 0 {
		song.TickRate = c.TickRate
	}
}
