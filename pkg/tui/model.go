// Package tui implements the read-only terminal monitor
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/oisee/relaymusic/pkg/player"
	"github.com/oisee/relaymusic/pkg/tracker"
)

// Source is what the monitor watches; *audio.Engine implements it
type Source interface {
	Status() []player.Status
	Levels() []bool
	Position() time.Duration
}

// Model is the monitor TUI model
type Model struct {
	Song   *tracker.Song
	Source Source

	// View state
	Width    int
	Height   int
	ShowHelp bool

	// Last snapshot
	Status   []player.Status
	Levels   []bool
	Position time.Duration
}

// NewModel creates a monitor for song playing from src
func NewModel(song *tracker.Song, src Source) Model {
	m := Model{
		Song:   song,
		Source: src,
		Width:  100,
		Height: 30,
	}
	m.refresh()
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tickCmd(),
	)
}

// tickMsg is sent periodically to refresh the snapshot
type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/60, func(_ time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m *Model) refresh() {
	m.Status = m.Source.Status()
	m.Levels = m.Source.Levels()
	m.Position = m.Source.Position()
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tickMsg:
		m.refresh()
		return m, tickCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "f1", "?":
			m.ShowHelp = !m.ShowHelp
		}
	}

	return m, nil
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	nameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	noteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	playStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10"))
	onStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	offStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// View implements tea.Model
func (m Model) View() string {
	if m.ShowHelp {
		return m.helpView()
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n\n")
	for ch := range m.Status {
		b.WriteString(m.channelView(ch))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.footerView())
	return b.String()
}

func (m Model) headerView() string {
	pos := m.Position.Truncate(100 * time.Millisecond)
	info := fmt.Sprintf(" │ %s │ %d ch │ %.1f Hz clock │ %s",
		m.Song.Title, len(m.Song.Channels), m.Song.TickRate, pos)
	return titleStyle.Render("RELAYMUSIC") + info
}

func (m Model) channelView(ch int) string {
	st := m.Status[ch]

	relay := offStyle.Render("○ open  ")
	if ch < len(m.Levels) && m.Levels[ch] {
		relay = onStyle.Render("● closed")
	}

	head := fmt.Sprintf("%s %s %s %5d Hz  step %02d/%02d  %s %s",
		nameStyle.Render(fmt.Sprintf("CH%d", ch+1)),
		relay,
		noteStyle.Render(fmt.Sprintf("%-4s", st.Step.Note)),
		st.Frequency,
		st.Index+1, st.Len,
		progressBar(st.Counter, st.Ticks, 16),
		dimStyle.Render(st.State.String()),
	)
	return head + "\n     " + m.trackView(ch, st.Index)
}

// trackView renders the channel's steps with the playing one highlighted,
// clipped to the window width
func (m Model) trackView(ch, current int) string {
	if ch >= len(m.Song.Channels) {
		return ""
	}
	track := m.Song.Channels[ch]
	width := 0
	var parts []string
	for i, step := range track {
		cell := fmt.Sprintf("%-4s", step.Note)
		width += len(cell) + 1
		if width > m.Width-6 {
			parts = append(parts, dimStyle.Render("…"))
			break
		}
		if i == current {
			parts = append(parts, playStyle.Render(cell))
		} else {
			parts = append(parts, dimStyle.Render(cell))
		}
	}
	return strings.Join(parts, " ")
}

// progressBar draws counter/total as a bar of width cells
func progressBar(counter, total, width int) string {
	if total <= 0 {
		return strings.Repeat("░", width)
	}
	filled := counter * width / total
	if filled > width {
		filled = width
	}
	return onStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled))
}

func (m Model) footerView() string {
	return dimStyle.Render(" [F1]Help [Q]Quit")
}

func (m Model) helpView() string {
	help := `
╔══════════════════════════════════════════════╗
║              RELAYMUSIC MONITOR              ║
╠══════════════════════════════════════════════╣
║ Each row is one relay channel:               ║
║   ● / ○     relay closed / open              ║
║   step      position in the channel track    ║
║   bar       duration ticks of the step       ║
║   state     start, high or low half-cycle    ║
║                                              ║
║   Q / Esc   Quit                             ║
║                              [F1] Close help ║
╚══════════════════════════════════════════════╝
`
	return titleStyle.Render(help)
}
