package tourview

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// blend mixes from toward to by t in Lab space. ok is false when either
// colour is not a hex colour, e.g. an ANSI palette index.
func blend(from, to lipgloss.TerminalColor, t float64, dark bool) (c lipgloss.Color, ok bool) {
	a, okA := toColorful(from, dark)
	b, okB := toColorful(to, dark)
	if !okA || !okB {
		return "", false
	}
	return lipgloss.Color(a.BlendLab(b, clamp01(t)).Clamped().Hex()), true
}

func toColorful(c lipgloss.TerminalColor, dark bool) (colorful.Color, bool) {
	var hex string
	switch v := c.(type) {
	case lipgloss.Color:
		hex = string(v)
	case lipgloss.AdaptiveColor:
		hex = v.Light
		if dark {
			hex = v.Dark
		}
	default:
		return colorful.Color{}, false
	}
	col, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, false
	}
	return col, true
}

func clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}
