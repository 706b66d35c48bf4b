package keymap

import "github.com/charmbracelet/bubbles/key"

// Section names, in the order help shows them.
const (
	SectionTour       = "Tour"
	SectionNavigation = "Navigation"
	SectionSystem     = "System"
)

// Section is a named group of bindings for the help screen.
type Section struct {
	Name     string
	Bindings []key.Binding
}

// SectionedKeyMap is implemented by keymaps that group their bindings.
type SectionedKeyMap interface {
	Sections() []Section
}

// Enabled returns the section's enabled bindings, or nil when there are none.
func (s Section) Enabled() []key.Binding {
	var enabled []key.Binding
	for _, b := range s.Bindings {
		if b.Enabled() {
			enabled = append(enabled, b)
		}
	}
	return enabled
}
