package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func TestCamelToSnake(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Next", "next"},
		{"MaybeLater", "maybe_later"},
		{"HTTPServer", "h_t_t_p_server"}, // consecutive caps are split
		{"A", "a"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := camelToSnake(tt.input)
			if result != tt.expected {
				t.Errorf("camelToSnake(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

type hostKeyMap struct {
	Base
	Refresh     key.Binding
	unexported  key.Binding
	NotABinding string
}

func TestApplyOverrides(t *testing.T) {
	km := hostKeyMap{
		Base: DefaultVim().Base,
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh scores"),
		),
		unexported:  key.NewBinding(key.WithKeys("x")),
		NotABinding: "not a binding",
	}

	ApplyOverrides(&km, Overrides{
		"refresh":       {"R", "f5"},
		"quit":          {"Q"},
		"not_a_binding": {"x"},
		"unexported":    {"y"},
	})

	if keys := km.Refresh.Keys(); len(keys) != 2 || keys[0] != "R" || keys[1] != "f5" {
		t.Errorf("Refresh keys = %v, want [R f5]", keys)
	}
	if help := km.Refresh.Help().Desc; help != "refresh scores" {
		t.Errorf("Refresh help = %q, want %q", help, "refresh scores")
	}
	if keys := km.Base.Quit.Keys(); len(keys) != 1 || keys[0] != "Q" {
		t.Errorf("Base.Quit keys = %v, want [Q]", keys)
	}
	if keys := km.unexported.Keys(); len(keys) != 1 || keys[0] != "x" {
		t.Errorf("unexported keys = %v, want [x]", keys)
	}
	if km.NotABinding != "not a binding" {
		t.Errorf("NotABinding = %q, want %q", km.NotABinding, "not a binding")
	}
}

func TestApplyOverrides_NilOverrides(t *testing.T) {
	km := DefaultVim()
	ApplyOverrides(&km, nil)

	if keys := km.Next.Keys(); len(keys) != 2 || keys[0] != "enter" {
		t.Errorf("Next keys = %v, want default", keys)
	}
}

func TestApplyOverrides_EmptyListDisables(t *testing.T) {
	km := DefaultVim()
	ApplyOverrides(&km, Overrides{"later": {}})

	if km.Later.Enabled() {
		t.Error("Later should be disabled")
	}
	if help := km.Later.Help().Desc; help != "maybe later" {
		t.Errorf("Later help = %q, want %q", help, "maybe later")
	}
}

func TestApplyOverrides_NonPointer(t *testing.T) {
	km := DefaultVim()
	ApplyOverrides(km, Overrides{"next": {"x"}})

	if keys := km.Next.Keys(); keys[0] != "enter" {
		t.Errorf("Next keys = %v, want unchanged", keys)
	}
}
