package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/oisee/relaymusic/pkg/tracker"
)

func TestCountdownElapsedIsIdempotent(t *testing.T) {
	clock := NewSampleClock(1000)
	timer := NewCountdown(clock)
	if timer.Elapsed() {
		t.Fatalf("stopped countdown must not elapse")
	}
	timer.StartRate(100) // 10 samples

	for i := 0; i < 9; i++ {
		clock.Advance()
		for j := 0; j < 3; j++ {
			if timer.Elapsed() {
				t.Fatalf("elapsed early at sample %d", clock.Now())
			}
		}
	}
	clock.Advance()
	if !timer.Elapsed() {
		t.Fatalf("expected elapse at sample %d", clock.Now())
	}
	if timer.Elapsed() {
		t.Fatalf("elapse reported twice")
	}
}

func TestCountdownCollapsesOverruns(t *testing.T) {
	clock := NewSampleClock(1000)
	timer := NewCountdown(clock)
	timer.StartRate(100)
	for i := 0; i < 35; i++ {
		clock.Advance()
	}
	if !timer.Elapsed() {
		t.Fatalf("expected elapse after overrun")
	}
	if timer.Elapsed() {
		t.Fatalf("missed periods must not accumulate")
	}
	// Next deadline stays on the period grid: sample 40
	for clock.Now() < 39 {
		clock.Advance()
		if timer.Elapsed() {
			t.Fatalf("unexpected elapse at sample %d", clock.Now())
		}
	}
	clock.Advance()
	if !timer.Elapsed() {
		t.Fatalf("expected elapse at sample 40")
	}
}

func TestCountdownHalfPeriod(t *testing.T) {
	clock := NewSampleClock(44100)
	timer := NewCountdown(clock)
	timer.Start(441)
	// 50 samples at 44.1 kHz
	if p := timer.Period(); p.Round(time.Microsecond) != 1134*time.Microsecond {
		t.Errorf("half-period of 441 Hz = %v, expected ~1.134ms", p)
	}
	timer.StartRate(0)
	if timer.Period() != 0 || timer.Elapsed() {
		t.Errorf("zero rate should stop the countdown")
	}
}

func TestRelaySample(t *testing.T) {
	var r Relay
	if r.Sample() != 0 {
		t.Errorf("undriven relay should be silent")
	}
	r.SetLow()
	if r.Sample() != -1 || r.Edges() != 0 {
		t.Errorf("low relay: sample %v edges %d", r.Sample(), r.Edges())
	}
	r.SetHigh()
	r.SetHigh()
	if r.Sample() != 1 || r.Edges() != 1 || !r.Level() {
		t.Errorf("high relay: sample %v edges %d", r.Sample(), r.Edges())
	}
}

func note(s string) tracker.Note {
	n, err := tracker.ParseNote(s)
	if err != nil {
		panic(err)
	}
	return n
}

func TestEngineRendersSquareWave(t *testing.T) {
	song := tracker.NewSong("a4", tracker.Track{{Note: note("A4"), Duration: tracker.Whole}})
	engine, err := NewEngine(song, 44100)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	buf := make([]float64, 44100)
	engine.GenerateSamples(buf)

	// 880 Hz toggles 1760 times a second, plus the first rising edge
	edges := engine.Edges()[0]
	if edges < 1759 || edges > 1762 {
		t.Errorf("relay edges in one second = %d, expected ~1761", edges)
	}
	crossings := 0
	for i := 1; i < len(buf); i++ {
		if (buf[i] > 0) != (buf[i-1] > 0) {
			crossings++
		}
	}
	if crossings < 1758 || crossings > 1761 {
		t.Errorf("sign changes in output = %d, expected ~1760", crossings)
	}
	if engine.Position() != time.Second {
		t.Errorf("position %v, expected 1s", engine.Position())
	}
}

func TestEngineAdvancesNotesOnDurationClock(t *testing.T) {
	song := tracker.NewSong("two",
		tracker.Track{{Note: note("C4"), Duration: tracker.Quarter}, {Note: note("D4"), Duration: tracker.Quarter}},
		tracker.Track{{Note: note("G3"), Duration: tracker.Whole}},
	)
	engine, err := NewEngine(song, 44100)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	if p := engine.TickPeriod().Round(time.Millisecond); p != 111*time.Millisecond {
		t.Errorf("tick period %v, expected 111ms", p)
	}
	// 9 Hz duration clock: four ticks land within half a second
	engine.GenerateSamples(make([]float64, 22050))
	status := engine.Status()
	if status[0].Index != 1 || status[0].Counter != 0 || status[0].Frequency != 587 {
		t.Errorf("channel 1 status %+v, expected D4 just loaded", status[0])
	}
	if status[1].Index != 0 || status[1].Counter != 4 {
		t.Errorf("channel 2 status %+v, expected counter 4 on G3", status[1])
	}
	if len(engine.Levels()) != 2 {
		t.Errorf("expected 2 relay levels")
	}
}

func TestNewEngineRejectsInvalidSong(t *testing.T) {
	song := tracker.NewSong("bad", tracker.Track{{Note: note("E5"), Duration: tracker.Quarter}})
	if _, err := NewEngine(song, 44100); !errors.Is(err, tracker.ErrUnsupportedNote) {
		t.Fatalf("expected ErrUnsupportedNote, got %v", err)
	}
	if _, err := NewEngine(tracker.NewSong("ok", tracker.Track{{Note: note("C4"), Duration: tracker.Quarter}}), 0); err == nil {
		t.Fatalf("expected error for zero sample rate")
	}
}

func TestExportWAV(t *testing.T) {
	song := tracker.NewSong("c4", tracker.Track{{Note: note("C4"), Duration: tracker.Quarter}})
	engine, err := NewEngine(song, 8000)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	var buf bytes.Buffer
	if err := ExportWAV(engine, &buf, 500*time.Millisecond); err != nil {
		t.Fatalf("ExportWAV failed: %v", err)
	}
	data := buf.Bytes()
	if len(data) != 44+4000*2 {
		t.Fatalf("WAV size %d, expected %d", len(data), 44+4000*2)
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" || string(data[36:40]) != "data" {
		t.Fatalf("bad WAV header %q", data[:44])
	}
	if rate := binary.LittleEndian.Uint32(data[24:28]); rate != 8000 {
		t.Errorf("sample rate %d, expected 8000", rate)
	}
	if size := binary.LittleEndian.Uint32(data[40:44]); size != 8000 {
		t.Errorf("data size %d, expected 8000", size)
	}
	if err := ExportWAV(engine, &buf, 0); err == nil {
		t.Errorf("expected error for zero length")
	}
}
