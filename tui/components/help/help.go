// Package help renders the host's key help: a one-line footer and a full
// sectioned overlay toggled with the help binding.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/grovetools/tour/tui/keymap"
	"github.com/grovetools/tour/tui/theme"
)

// Model is an embeddable help component.
type Model struct {
	Keys    keymap.KeyMap
	ShowAll bool
	Width   int
	Height  int
	Theme   *theme.Theme
	Title   string
}

// New creates a help model in short mode.
func New(keys keymap.KeyMap) Model {
	return Model{
		Keys:  keys,
		Theme: theme.DefaultTheme,
	}
}

// Update closes the full view on help, quit or esc.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case tea.KeyMsg:
		if m.ShowAll {
			if key.Matches(msg, m.Keys.Help) || key.Matches(msg, m.Keys.Quit) || msg.Type == tea.KeyEsc {
				m.Toggle()
			}
		}
	}
	return m, nil
}

// View renders the footer, or the full help centred on screen.
func (m Model) View() string {
	if m.Theme == nil {
		m.Theme = theme.DefaultTheme
	}
	if m.ShowAll {
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, m.viewFull())
	}
	return m.viewShort(m.Keys.ShortHelp())
}

func (m Model) viewShort(group []key.Binding) string {
	var pairs []string
	for _, binding := range group {
		if !binding.Enabled() {
			continue
		}
		h := binding.Help()
		if h.Key == "" || h.Desc == "" {
			continue
		}
		pairs = append(pairs, fmt.Sprintf("%s %s",
			m.Theme.Highlight.Render(h.Key),
			m.Theme.Muted.Render(h.Desc)))
	}
	return strings.Join(pairs, m.Theme.Muted.Render(" • "))
}

func (m Model) viewFull() string {
	var blocks []string
	for _, section := range m.Keys.Sections() {
		if enabled := section.Enabled(); enabled != nil {
			blocks = append(blocks, m.renderSection(section.Name, enabled))
		}
	}
	if len(blocks) == 0 {
		return ""
	}

	title := m.Title
	if title == "" {
		title = "Help"
	}
	body := lipgloss.JoinVertical(lipgloss.Left, blocks...)
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.Theme.Colors.Orange).
		Width(lipgloss.Width(body)).
		Align(lipgloss.Center).
		MarginBottom(1)
	return lipgloss.JoinVertical(lipgloss.Center, titleStyle.Render(title), body)
}

func (m Model) renderSection(name string, bindings []key.Binding) string {
	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(m.Theme.Colors.Cyan)

	table := ltable.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, binding := range bindings {
		h := binding.Help()
		table = table.Row(keyStyle.Render(h.Key), m.Theme.Muted.Italic(true).Render(h.Desc))
	}

	titleStyle := lipgloss.NewStyle().Foreground(m.Theme.Colors.Orange).Italic(true)
	return m.Theme.Box.MarginBottom(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(sectionIcon(name)+" "+name), table.String()),
	)
}

func sectionIcon(name string) string {
	switch name {
	case keymap.SectionTour:
		return theme.IconInfo
	case keymap.SectionNavigation:
		return theme.IconArrow
	default:
		return theme.IconBullet
	}
}

// Toggle switches between the footer and the full view.
func (m *Model) Toggle() {
	m.ShowAll = !m.ShowAll
}

// SetSize sets the dimensions of the full view.
func (m *Model) SetSize(width, height int) {
	m.Width = width
	m.Height = height
}
