package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/oisee/relaymusic/pkg/tracker"
)

func parse(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	c := Default()
	fs := pflag.NewFlagSet("relaymusic", pflag.ContinueOnError)
	return c, c.Parse(fs, args)
}

func TestDefaults(t *testing.T) {
	c, err := parse(t)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if c.Builtin != "ode-to-joy" || c.SampleRate != 44100 || !c.Monitor || c.SongPath != "" {
		t.Errorf("unexpected defaults %+v", c)
	}
}

func TestFlags(t *testing.T) {
	c, err := parse(t, "-r", "22050", "--tick-rate=12", "-w", "out.wav", "-l", "5s", "--monitor=false", "song.yml")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if c.SampleRate != 22050 || c.TickRate != 12 || c.WAVPath != "out.wav" || c.Length != 5*time.Second {
		t.Errorf("flags not applied: %+v", c)
	}
	if c.Monitor {
		t.Errorf("--monitor=false ignored")
	}
	if c.SongPath != "song.yml" {
		t.Errorf("song path %q", c.SongPath)
	}
}

func TestInvalid(t *testing.T) {
	cases := [][]string{
		{"-r", "10"},
		{"--tick-rate=-1"},
		{"-w", "x.wav", "-l", "0s"},
		{"a.yml", "b.yml"},
		{"--builtin", ""},
		{"--no-such-flag"},
	}
	for _, args := range cases {
		if _, err := parse(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestApply(t *testing.T) {
	song := tracker.NewSong("x")
	c := Default()
	c.Apply(song)
	if song.TickRate != tracker.DefaultTickRate {
		t.Errorf("zero override changed tick rate to %v", song.TickRate)
	}
	c.TickRate = 4.5
	c.Apply(song)
	if song.TickRate != 4.5 {
		t.Errorf("tick rate %v, expected 4.5", song.TickRate)
	}
}
