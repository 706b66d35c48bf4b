package help

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/grovetools/tour/tui/keymap"
)

func TestShortView(t *testing.T) {
	m := New(keymap.DefaultVim())
	out := m.View()

	assert.Contains(t, out, "enter")
	assert.Contains(t, out, "skip tour")
	assert.Contains(t, out, "quit")
	assert.NotContains(t, out, "maybe later")
}

func TestShortViewHidesDisabled(t *testing.T) {
	km := keymap.DefaultVim()
	km.Skip.SetEnabled(false)
	m := New(km)

	assert.NotContains(t, m.View(), "skip tour")
}

func TestFullViewListsSections(t *testing.T) {
	m := New(keymap.DefaultVim())
	m.SetSize(100, 40)
	m.Toggle()

	out := m.View()
	assert.Contains(t, out, "Help")
	assert.Contains(t, out, keymap.SectionTour)
	assert.Contains(t, out, keymap.SectionNavigation)
	assert.Contains(t, out, "maybe later")
	assert.Contains(t, out, "next day")
}

func TestEscClosesFullView(t *testing.T) {
	m := New(keymap.DefaultVim())
	m.Toggle()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.ShowAll)
}

func TestKeysIgnoredInShortMode(t *testing.T) {
	m := New(keymap.DefaultVim())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.False(t, m.ShowAll)
}
