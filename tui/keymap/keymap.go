// Package keymap defines the key bindings for the tour host and overlay.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/grovetools/tour/config"
)

// Overrides maps snake_case binding names to replacement keys.
type Overrides map[string][]string

// KeysConfig is the `keys` extension section of tour.yml.
//
//	keys:
//	  preset: arrows
//	  overrides:
//	    next: ["space", "enter"]
type KeysConfig struct {
	Preset    string    `yaml:"preset"`
	Overrides Overrides `yaml:"overrides"`
}

// Base holds the bindings the host screen uses.
type Base struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// KeyMap is the complete binding set while the tour overlay may be shown.
type KeyMap struct {
	Base

	Next   key.Binding
	Skip   key.Binding
	Enable key.Binding
	Later  key.Binding
}

// DefaultVim returns the default vim-style keymap.
func DefaultVim() KeyMap {
	return KeyMap{
		Base: Base{
			Up: key.NewBinding(
				key.WithKeys("k", "up"),
				key.WithHelp("k/up", "up"),
			),
			Down: key.NewBinding(
				key.WithKeys("j", "down"),
				key.WithHelp("j/down", "down"),
			),
			Left: key.NewBinding(
				key.WithKeys("h", "left"),
				key.WithHelp("h/left", "previous day"),
			),
			Right: key.NewBinding(
				key.WithKeys("l", "right"),
				key.WithHelp("l/right", "next day"),
			),
			Help: key.NewBinding(
				key.WithKeys("?"),
				key.WithHelp("?", "help"),
			),
			Quit: key.NewBinding(
				key.WithKeys("q", "ctrl+c"),
				key.WithHelp("q", "quit"),
			),
		},
		Next: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "next"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s", "esc"),
			key.WithHelp("s", "skip tour"),
		),
		Enable: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "enable notifications"),
		),
		Later: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "maybe later"),
		),
	}
}

// DefaultArrows returns a keymap without letter navigation.
func DefaultArrows() KeyMap {
	km := DefaultVim()
	km.Up = key.NewBinding(key.WithKeys("up"), key.WithHelp("up", "up"))
	km.Down = key.NewBinding(key.WithKeys("down"), key.WithHelp("down", "down"))
	km.Left = key.NewBinding(key.WithKeys("left"), key.WithHelp("left", "previous day"))
	km.Right = key.NewBinding(key.WithKeys("right"), key.WithHelp("right", "next day"))
	return km
}

// New returns the default keymap.
func New() KeyMap {
	return DefaultVim()
}

// Load builds the keymap from the `keys` config extension. A nil config or
// a malformed section yields the vim preset.
func Load(cfg *config.Config) KeyMap {
	if cfg == nil {
		return DefaultVim()
	}

	var kc KeysConfig
	if err := cfg.UnmarshalExtension("keys", &kc); err != nil {
		return DefaultVim()
	}

	var km KeyMap
	switch kc.Preset {
	case "arrows":
		km = DefaultArrows()
	default:
		km = DefaultVim()
	}

	ApplyOverrides(&km, kc.Overrides)
	return km
}

// ShortHelp returns the bindings shown in the one-line help footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Skip, k.Help, k.Quit}
}

// FullHelp returns bindings grouped by section.
func (k KeyMap) FullHelp() [][]key.Binding {
	var groups [][]key.Binding
	for _, s := range k.Sections() {
		if enabled := s.Enabled(); enabled != nil {
			groups = append(groups, enabled)
		}
	}
	return groups
}

// Sections implements SectionedKeyMap.
func (k KeyMap) Sections() []Section {
	return []Section{
		{Name: SectionTour, Bindings: k.TourBindings()},
		{Name: SectionNavigation, Bindings: []key.Binding{k.Up, k.Down, k.Left, k.Right}},
		{Name: SectionSystem, Bindings: []key.Binding{k.Help, k.Quit}},
	}
}

// TourBindings returns the overlay's action bindings.
func (k KeyMap) TourBindings() []key.Binding {
	return []key.Binding{k.Next, k.Skip, k.Enable, k.Later}
}
