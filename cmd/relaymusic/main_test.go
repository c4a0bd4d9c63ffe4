package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/oisee/relaymusic/pkg/audio"
	"github.com/oisee/relaymusic/pkg/config"
)

func TestLoadSong(t *testing.T) {
	cfg := config.Default()
	song, err := loadSong(cfg)
	if err != nil {
		t.Fatalf("loadSong failed: %v", err)
	}
	if song.Title != "Ode to Joy" {
		t.Errorf("unexpected default song %q", song.Title)
	}

	cfg.Builtin = "nope"
	if _, err := loadSong(cfg); err == nil {
		t.Errorf("expected error for unknown built-in")
	}

	cfg.SongPath = filepath.Join("..", "..", "songs", "ode_to_joy.yml")
	song, err = loadSong(cfg)
	if err != nil {
		t.Fatalf("loadSong(%s) failed: %v", cfg.SongPath, err)
	}
	if len(song.Channels) != 4 {
		t.Errorf("expected 4 channels, got %d", len(song.Channels))
	}
}

func TestWriteOutputs(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.SampleRate = 8000
	cfg.Length = 250 * time.Millisecond
	song, err := loadSong(cfg)
	if err != nil {
		t.Fatalf("loadSong failed: %v", err)
	}

	midiPath := filepath.Join(dir, "song.mid")
	if err := writeMIDI(midiPath, song); err != nil {
		t.Fatalf("writeMIDI failed: %v", err)
	}
	if info, err := os.Stat(midiPath); err != nil || info.Size() == 0 {
		t.Errorf("MIDI file missing or empty: %v", err)
	}

	engine, err := audio.NewEngine(song, cfg.SampleRate)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	wavPath := filepath.Join(dir, "song.wav")
	if err := writeWAV(wavPath, engine, cfg); err != nil {
		t.Fatalf("writeWAV failed: %v", err)
	}
	info, err := os.Stat(wavPath)
	if err != nil {
		t.Fatalf("WAV file missing: %v", err)
	}
	if info.Size() != 44+2000*2 {
		t.Errorf("WAV size %d, expected %d", info.Size(), 44+2000*2)
	}

	if err := writeMIDI(filepath.Join(dir, "missing", "x.mid"), song); err == nil {
		t.Errorf("expected error writing into a missing directory")
	}
}
