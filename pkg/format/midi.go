package format

import (
	"fmt"
	"io"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/oisee/relaymusic/pkg/tracker"
)

const (
	ticksPerQuarter  = 96
	ticksPerDuration = ticksPerQuarter / 4 // one duration tick is a sixteenth
	noteVelocity     = 100
)

// WriteSMF writes one pass over every channel as a format 1 Standard MIDI
// File: a tempo track followed by one track per channel.
func WriteSMF(w io.Writer, s *tracker.Song) error {
	if len(s.Channels) > 16 {
		return fmt.Errorf("cannot export %d channels, MIDI has 16", len(s.Channels))
	}

	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	// Four duration ticks per beat
	bpm := s.TickRate * 60 / 4

	var tempo smf.Track
	tempo.Add(0, smf.MetaTrackSequenceName(s.Title))
	tempo.Add(0, smf.MetaMeter(4, 4))
	tempo.Add(0, smf.MetaTempo(bpm))
	tempo.Close(0)
	if err := sm.Add(tempo); err != nil {
		return fmt.Errorf("error adding tempo track: %w", err)
	}

	for ch, steps := range s.Channels {
		var track smf.Track
		track.Add(0, smf.MetaTrackSequenceName(fmt.Sprintf("Relay %d", ch+1)))
		for _, step := range steps {
			key := step.Note.MIDIKey()
			if key < 0 || key > 127 {
				return fmt.Errorf("channel %d: note %v outside MIDI range", ch+1, step.Note)
			}
			length := uint32(step.Duration.Ticks() * ticksPerDuration)
			track.Add(0, midi.NoteOn(uint8(ch), uint8(key), noteVelocity))
			track.Add(length, midi.NoteOff(uint8(ch), uint8(key)))
		}
		track.Close(0)
		if err := sm.Add(track); err != nil {
			return fmt.Errorf("error adding track %d: %w", ch+1, err)
		}
	}

	if _, err := sm.WriteTo(w); err != nil {
		return fmt.Errorf("error writing MIDI file: %w", err)
	}
	return nil
}
