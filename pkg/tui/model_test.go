package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/oisee/relaymusic/pkg/player"
	"github.com/oisee/relaymusic/pkg/tracker"
)

type fakeSource struct {
	status []player.Status
	levels []bool
	pos    time.Duration
}

func (f *fakeSource) Status() []player.Status { return f.status }
func (f *fakeSource) Levels() []bool          { return f.levels }
func (f *fakeSource) Position() time.Duration { return f.pos }

func testModel() (Model, *fakeSource) {
	b4 := tracker.Note{Pitch: tracker.B, Octave: 4}
	d4 := tracker.Note{Pitch: tracker.D, Octave: 4}
	song := tracker.NewSong("Test Song",
		tracker.Track{{Note: b4, Duration: tracker.Quarter}, {Note: d4, Duration: tracker.Quarter}},
		tracker.Track{{Note: d4, Duration: tracker.Whole}},
	)
	src := &fakeSource{
		status: []player.Status{
			{Step: song.Channels[0][1], Frequency: 587, Index: 1, Len: 2, Counter: 2, Ticks: 4, State: player.High},
			{Step: song.Channels[1][0], Frequency: 587, Index: 0, Len: 1, Counter: 0, Ticks: 16, State: player.Low},
		},
		levels: []bool{true, false},
		pos:    1500 * time.Millisecond,
	}
	return NewModel(song, src), src
}

func TestViewShowsChannels(t *testing.T) {
	m, _ := testModel()
	view := m.View()
	for _, want := range []string{"Test Song", "CH1", "CH2", "587 Hz", "step 02/02", "closed", "open", "high", "low", "1.5s"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestTickRefreshesSnapshot(t *testing.T) {
	m, src := testModel()
	src.pos = 3 * time.Second
	src.levels = []bool{false, true}
	updated, cmd := m.Update(tickMsg{})
	if cmd == nil {
		t.Fatalf("tick should schedule the next tick")
	}
	um := updated.(Model)
	if um.Position != 3*time.Second || !um.Levels[1] {
		t.Errorf("snapshot not refreshed: %v %v", um.Position, um.Levels)
	}
}

func TestKeys(t *testing.T) {
	m, _ := testModel()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	um := updated.(Model)
	if !um.ShowHelp || !strings.Contains(um.View(), "MONITOR") {
		t.Errorf("? should show help")
	}
	_, cmd := um.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("q should return tea.Quit")
	}
}

func TestProgressBar(t *testing.T) {
	bar := progressBar(2, 4, 8)
	if strings.Count(bar, "█") != 4 || strings.Count(bar, "░") != 4 {
		t.Errorf("unexpected bar %q", bar)
	}
	if strings.Count(progressBar(0, 0, 4), "░") != 4 {
		t.Errorf("zero total should render empty")
	}
}
