// Package tui renders a live view of the GPU load while a recording
// session runs in the background.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gpumon/internal/recorder"
	"gpumon/internal/source"
)

const (
	refreshEvery = 100 * time.Millisecond
	gaugeWidth   = 50
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	gaugeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type tickMsg time.Time

type model struct {
	rec     *recorder.Recorder
	current int
	readErr error
	stats   recorder.Stats
}

// Run shows the live view until the user quits. The caller owns the
// recorder lifecycle; Run only reads from it.
func Run(rec *recorder.Recorder) error {
	_, err := tea.NewProgram(model{rec: rec}).Run()
	return err
}

func tick() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tickMsg:
		m.current, m.readErr = m.rec.Current()
		m.stats = m.rec.Stats()
		return m, tick()
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("GPU load"))
	b.WriteString("\n\n")

	if m.readErr != nil {
		b.WriteString(errStyle.Render("no reading: " + m.readErr.Error()))
	} else {
		pct := source.Percent(m.current)
		filled := m.current * gaugeWidth / 1000
		bar := gaugeStyle.Render(strings.Repeat("█", filled)) +
			dimStyle.Render(strings.Repeat("░", gaugeWidth-filled))
		b.WriteString(fmt.Sprintf("%s %5.1f%%", bar, pct))
	}
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("session: %s   samples: %d   avg: %.1f%%   max: %.1f%%   stddev: %.1f\n",
		m.rec.State(), m.stats.Count, m.stats.Average/10,
		source.Percent(m.stats.Max), m.stats.StdDev))

	b.WriteString(dimStyle.Render("\nq to quit"))
	b.WriteString("\n")
	return b.String()
}
