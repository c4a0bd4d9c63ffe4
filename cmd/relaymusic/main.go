package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/pflag"

	"github.com/oisee/relaymusic/pkg/audio"
	"github.com/oisee/relaymusic/pkg/config"
	"github.com/oisee/relaymusic/pkg/format"
	"github.com/oisee/relaymusic/pkg/tracker"
	"github.com/oisee/relaymusic/pkg/tui"
	"github.com/oisee/relaymusic/pkg/version"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stderr, "", log.Ldate|log.Ltime)

	cfg := config.Default()
	fs := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Relay board melody player.\nUsage: %s [flags] [song.yml|song.json]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Built-in songs: %s\n", strings.Join(format.BuiltinNames(), ", "))
		fs.PrintDefaults()
	}
	if err := cfg.Parse(fs, os.Args[1:]); err != nil {
		logger.Fatalf("invalid arguments: %v", err)
	}
	if cfg.Version {
		fmt.Println(version.String())
		return
	}

	song, err := loadSong(cfg)
	if err != nil {
		fatalSong(err)
	}
	cfg.Apply(song)
	// Nothing is played unless the whole song is playable
	if err := tracker.Validate(song); err != nil {
		fatalSong(err)
	}
	logger.Printf("Loaded %q: %d channels, %.1f Hz duration clock", song.Title, len(song.Channels), song.TickRate)

	if cfg.Dump {
		spew.Dump(song)
	}
	if cfg.Check {
		logger.Printf("Song is valid")
		return
	}

	if cfg.MIDIPath != "" {
		if err := writeMIDI(cfg.MIDIPath, song); err != nil {
			logger.Fatalf("MIDI export failed: %v", err)
		}
		logger.Printf("Wrote %s", cfg.MIDIPath)
	}

	engine, err := audio.NewEngine(song, cfg.SampleRate)
	if err != nil {
		logger.Fatalf("could not start relay simulation: %v", err)
	}

	if cfg.WAVPath != "" {
		if err := writeWAV(cfg.WAVPath, engine, cfg); err != nil {
			logger.Fatalf("WAV export failed: %v", err)
		}
		logger.Printf("Wrote %s (%v)", cfg.WAVPath, cfg.Length)
	}

	// Play only when no file output was requested
	if cfg.MIDIPath == "" && cfg.WAVPath == "" {
		if err := play(engine, song, cfg); err != nil {
			logger.Fatalf("playback failed: %v", err)
		}
	}
}

func loadSong(cfg *config.Config) (*tracker.Song, error) {
	if cfg.SongPath != "" {
		return format.LoadFile(cfg.SongPath)
	}
	song, ok := format.Builtin(cfg.Builtin)
	if !ok {
		return nil, fmt.Errorf("unknown built-in song %q (have %s)", cfg.Builtin, strings.Join(format.BuiltinNames(), ", "))
	}
	return song, nil
}

// fatalSong reports every validation problem before exiting
func fatalSong(err error) {
	var verr *tracker.ValidationError
	if errors.As(err, &verr) {
		for _, p := range verr.Problems {
			logger.Printf("song error: %v", p)
		}
		logger.Fatalf("refusing to play: %d problem(s) in song data", len(verr.Problems))
	}
	logger.Fatalf("could not load song: %v", err)
}

func writeMIDI(path string, song *tracker.Song) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := format.WriteSMF(f, song); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeWAV(path string, engine *audio.Engine, cfg *config.Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := audio.ExportWAV(engine, f, cfg.Length); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func play(engine *audio.Engine, song *tracker.Song, cfg *config.Config) error {
	out, err := audio.NewRealtimeOutput(engine)
	if err != nil {
		return err
	}
	defer out.Close()

	if cfg.Monitor {
		p := tea.NewProgram(tui.NewModel(song, engine))
		_, err := p.Run()
		return err
	}

	// The melody loops forever; stop on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	logger.Printf("Playing, press Ctrl+C to stop")
	<-ctx.Done()
	return nil
}
