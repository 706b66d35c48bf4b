// Package scoreboard is the demo host screen the tour is shown over: a day
// of game summaries with date navigation, excitement score pills, game
// labels and a settings button.
package scoreboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/tour/tour"
	"github.com/grovetools/tour/tui/components/help"
	"github.com/grovetools/tour/tui/components/tourview"
	"github.com/grovetools/tour/tui/keymap"
	"github.com/grovetools/tour/tui/theme"
)

const (
	marginX       = 2
	headerRow     = 0
	dateRow       = 2
	firstGameRow  = 4
	rowsPerGame   = 3
	settingsLabel = "⚙ Settings"
)

// Model is the root Bubble Tea model of `tour run`.
type Model struct {
	tour  *tourview.Model
	help  help.Model
	theme *theme.Theme

	day      int
	selected int
	width    int
	height   int
}

// New builds the host around an overlay.
func New(overlay *tourview.Model) *Model {
	return &Model{
		tour:  overlay,
		help:  help.New(overlay.Keys()),
		theme: theme.DefaultTheme,
	}
}

// Init starts the tour.
func (m *Model) Init() tea.Cmd {
	return m.tour.Init()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.SetSize(msg.Width, msg.Height)
		_, cmd := m.tour.Update(msg)
		m.syncTargets()
		return m, cmd

	case tea.KeyMsg:
		keys := m.tour.Keys()
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
		if m.help.ShowAll {
			m.help.Keys = keys
			m.help, _ = m.help.Update(msg)
			return m, nil
		}
		if handled, cmd := m.tour.Update(msg); handled {
			return m, cmd
		}
		m.handleHostKey(msg, keys)
		return m, nil
	}

	_, cmd := m.tour.Update(msg)
	return m, cmd
}

func (m *Model) handleHostKey(msg tea.KeyMsg, keys keymap.KeyMap) {
	games := GamesForDay(m.day)
	switch {
	case key.Matches(msg, keys.Help):
		m.help.Keys = keys
		m.help.Toggle()
	case key.Matches(msg, keys.Left):
		m.day--
		m.selected = 0
	case key.Matches(msg, keys.Right):
		m.day++
		m.selected = 0
	case key.Matches(msg, keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, keys.Down):
		if m.selected < len(games)-1 {
			m.selected++
		}
	}
	m.syncTargets()
}

// Day returns the day offset from yesterday.
func (m *Model) Day() int { return m.day }

// Selected returns the highlighted game index.
func (m *Model) Selected() int { return m.selected }

func (m *Model) syncTargets() {
	_, targets := m.layout()
	m.tour.SetTargets(targets)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.help.ShowAll {
		return m.help.View()
	}
	screen, _ := m.layout()
	return m.tour.View(screen)
}

// layout renders the host screen and measures the widgets the tour points
// at, in cells.
func (m *Model) layout() (string, tour.TargetRegistry) {
	t := m.theme
	targets := tour.TargetRegistry{}
	rows := make([]string, max(m.height, 1))
	for i := range rows {
		rows[i] = ""
	}
	set := func(row int, s string) {
		if row >= 0 && row < len(rows) {
			rows[row] = s
		}
	}

	// Header with the settings button on the right.
	title := t.Header.UnsetMargins().Render("Game Summaries")
	settings := t.ButtonGhost.Render(settingsLabel)
	settingsW := lipgloss.Width(settings)
	settingsX := max(m.width-marginX-settingsW, marginX+lipgloss.Width(title)+1)
	set(headerRow, pad(marginX)+title+pad(settingsX-marginX-lipgloss.Width(title))+settings)
	targets[tour.KeySettingsButton] = tour.Rect{X: float64(settingsX), Y: headerRow, Width: float64(settingsW), Height: 1}

	// Date navigation, centred.
	nav := fmt.Sprintf("%s  %s  %s", theme.IconArrowLeft, t.Bold.Render(DayLabel(m.day)), theme.IconArrow)
	navW := lipgloss.Width(nav)
	navX := max((m.width-navW)/2, 0)
	set(dateRow, pad(navX)+nav)
	targets[tour.KeyDateNavigation] = tour.Rect{X: float64(navX), Y: dateRow, Width: float64(navW), Height: 1}

	for i, g := range GamesForDay(m.day) {
		row := firstGameRow + i*rowsPerGame
		matchup := g.Matchup()
		if i == m.selected {
			matchup = t.Selected.Render(matchup)
		} else {
			matchup = t.Normal.Render(matchup)
		}
		pill := m.pill(g.Excitement)
		pillW := lipgloss.Width(pill)
		pillX := max(m.width-marginX-pillW, marginX+lipgloss.Width(matchup)+1)
		set(row, pad(marginX)+matchup+pad(pillX-marginX-lipgloss.Width(matchup))+pill)

		labels := t.Muted.Render(strings.Join(g.Labels, " · "))
		set(row+1, pad(marginX+2)+labels)

		if i == 0 {
			targets[tour.KeyScorePill] = tour.Rect{X: float64(pillX), Y: float64(row), Width: float64(pillW), Height: 1}
			targets[tour.KeyLabels] = tour.Rect{X: float64(marginX + 2), Y: float64(row + 1), Width: float64(lipgloss.Width(labels)), Height: 1}
		}
	}

	footer := m.help
	footer.Keys = m.tour.Keys()
	set(len(rows)-1, pad(marginX)+footer.View())

	return strings.Join(rows, "\n"), targets
}

func (m *Model) pill(score int) string {
	t := m.theme
	style := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	switch {
	case score >= 9:
		style = style.Foreground(t.Colors.Red)
	case score >= 7:
		style = style.Foreground(t.Colors.Orange)
	case score >= 4:
		style = style.Foreground(t.Colors.Yellow)
	default:
		style = style.Foreground(t.Colors.MutedText)
	}
	return style.Render(fmt.Sprintf("%s %d", theme.IconFire, score))
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
