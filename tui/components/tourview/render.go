package tourview

import (
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/grovetools/tour/tour"
	"github.com/grovetools/tour/tui/keymap"
	"github.com/grovetools/tour/tui/theme"
)

const (
	// scrimStrength is how far dimmed text moves toward the scrim colour at
	// full overlay opacity.
	scrimStrength = 0.75
	// liftPerRow converts the tooltip lift to terminal rows.
	liftPerRow = 10.0
	// minCardOpacity hides the card while it is nearly transparent.
	minCardOpacity = 0.15
)

// CellLayout is the geometry layout for a terminal measured in cells.
func CellLayout() tour.Layout {
	return tour.Layout{
		Padding:          1,
		Margin:           2,
		Gap:              1,
		FullScreenAnchor: tour.DefaultFullScreenAnchor,
		CornerRadius:     1,
	}
}

// Renderer draws a tour.View over a host screen.
type Renderer struct {
	Theme *theme.Theme
	Keys  keymap.KeyMap
	// Dark selects the dark side of adaptive colours.
	Dark bool
}

// NewRenderer returns a renderer using the default theme.
func NewRenderer(keys keymap.KeyMap) Renderer {
	return Renderer{
		Theme: theme.DefaultTheme,
		Keys:  keys,
		Dark:  lipgloss.HasDarkBackground(),
	}
}

// Render composites the overlay onto base, a width x height screen.
func (r Renderer) Render(base string, v tour.View, width, height int) string {
	if width <= 0 || height <= 0 || v.Frame.OverlayOpacity <= 0 {
		return base
	}

	c := newCanvas(base, width, height)
	hole, hasHole := spotlightCells(v)
	r.dim(c, v.Frame.OverlayOpacity, hole, hasHole)
	if hasHole {
		r.drawSpotlight(c, hole, v.Frame.OverlayOpacity*v.Frame.SpotlightOpacity)
	}

	opacity := v.Frame.OverlayOpacity * v.Frame.TooltipOpacity
	if opacity >= minCardOpacity {
		card := r.card(v, opacity)
		x, y := cardOrigin(v, card, height)
		c.place(card, x, y)
	}
	return c.String()
}

// cellRect is a rectangle in whole cells.
type cellRect struct {
	x, y, w, h int
}

func (r cellRect) contains(row int) bool {
	return row >= r.y && row < r.y+r.h
}

// spotlightCells scales the spotlight about its centre and snaps it to cells.
func spotlightCells(v tour.View) (cellRect, bool) {
	s := v.Placement.Spotlight
	if s == nil || v.Frame.SpotlightOpacity <= 0 {
		return cellRect{}, false
	}
	scale := v.Frame.SpotlightScale
	w := s.Width * scale
	h := s.Height * scale
	x := s.X + (s.Width-w)/2
	y := s.Y + (s.Height-h)/2

	rect := cellRect{
		x: int(math.Round(x)),
		y: int(math.Round(y)),
		w: int(math.Round(w)),
		h: int(math.Round(h)),
	}
	if rect.w <= 0 || rect.h <= 0 {
		return cellRect{}, false
	}
	return rect, true
}

// dim repaints every cell outside hole in a colour faded toward the scrim.
func (r Renderer) dim(c *canvas, opacity float64, hole cellRect, hasHole bool) {
	style := r.dimStyle(opacity)
	render := func(s string) string {
		if s == "" {
			return ""
		}
		return style.Render(ansi.Strip(s))
	}

	for row := range c.lines {
		if !hasHole || !hole.contains(row) {
			c.lines[row] = render(c.lines[row])
			continue
		}
		left := clampInt(hole.x, 0, c.width)
		right := clampInt(hole.x+hole.w, 0, c.width)
		c.lines[row] = render(c.cut(row, 0, left)) + c.cut(row, left, right) + render(c.cut(row, right, c.width))
	}
}

func (r Renderer) dimStyle(opacity float64) lipgloss.Style {
	colors := r.Theme.Colors
	if fg, ok := blend(colors.LightText, colors.Scrim, opacity*scrimStrength, r.Dark); ok {
		return lipgloss.NewStyle().Foreground(fg)
	}
	// ANSI palettes cannot be blended.
	return lipgloss.NewStyle().Faint(true)
}

// drawSpotlight outlines the hole with the theme's spotlight border.
func (r Renderer) drawSpotlight(c *canvas, hole cellRect, opacity float64) {
	if hole.w < 2 || hole.h < 2 {
		return
	}
	border := lipgloss.RoundedBorder()
	style := lipgloss.NewStyle().Foreground(r.Theme.Spotlight.GetBorderTopForeground())
	if fg, ok := blend(r.Theme.Colors.Scrim, r.Theme.Spotlight.GetBorderTopForeground(), opacity, r.Dark); ok {
		style = style.Foreground(fg)
	}

	inner := strings.Repeat(border.Top, hole.w-2)
	c.place(style.Render(border.TopLeft+inner+border.TopRight), hole.x, hole.y)
	inner = strings.Repeat(border.Bottom, hole.w-2)
	c.place(style.Render(border.BottomLeft+inner+border.BottomRight), hole.x, hole.y+hole.h-1)
	for row := hole.y + 1; row < hole.y+hole.h-1; row++ {
		if row < 0 || row >= len(c.lines) {
			continue
		}
		c.put(row, hole.x, style.Render(border.Left))
		c.put(row, hole.x+hole.w-1, style.Render(border.Right))
	}
}

// card renders the tooltip card.
func (r Renderer) card(v tour.View, opacity float64) string {
	t := r.Theme
	width := int(math.Round(v.Placement.Tooltip.Width))
	frameWidth := t.Card.GetHorizontalFrameSize()
	if width < frameWidth+1 {
		width = frameWidth + 1
	}
	inner := width - frameWidth

	title := t.CardTitle.Render(v.Step.Title)
	if v.Step.Icon != "" {
		title = t.CardIcon.Render(v.Step.Icon) + title
	}

	parts := []string{
		title,
		"",
		t.CardBody.Width(inner).Render(v.Step.Description),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center, r.dots(v.Progress), "  ", r.buttons(v)),
	}

	style := t.Card
	if opacity < 1 {
		if border, ok := blend(t.Colors.Scrim, t.Card.GetBorderTopForeground(), opacity, r.Dark); ok {
			style = style.BorderForeground(border)
		} else if opacity < 0.5 {
			style = style.Faint(true)
		}
	}
	return style.Width(width - t.Card.GetHorizontalBorderSize()).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (r Renderer) dots(progress []tour.DotState) string {
	t := r.Theme
	var b strings.Builder
	for i, d := range progress {
		if i > 0 {
			b.WriteString(" ")
		}
		switch d {
		case tour.DotActive:
			b.WriteString(t.DotActive.Render(theme.IconDotFilled))
		case tour.DotCompleted:
			b.WriteString(t.DotCompleted.Render(theme.IconDotFilled))
		default:
			b.WriteString(t.DotUpcoming.Render(theme.IconDotEmpty))
		}
	}
	return b.String()
}

func (r Renderer) buttons(v tour.View) string {
	t := r.Theme
	if v.AwaitingPermission {
		return t.Muted.Render("Requesting permission…")
	}

	var buttons []string
	if v.CanSkip {
		buttons = append(buttons, t.ButtonGhost.Render(label(r.Keys.Skip, tour.LabelSkip)))
	}
	if v.IsNotificationStep {
		buttons = append(buttons,
			t.ButtonGhost.Render(label(r.Keys.Later, tour.LabelLater)),
			t.ButtonPrimary.Render(label(r.Keys.Enable, tour.LabelEnableNotifications)),
		)
	} else {
		buttons = append(buttons, t.ButtonPrimary.Render(label(r.Keys.Next, v.PrimaryLabel)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, buttons...)
}

func label(b key.Binding, text string) string {
	if k := b.Help().Key; k != "" {
		return text + " (" + k + ")"
	}
	return text
}

// cardOrigin converts the tooltip placement to the card's top-left cell.
func cardOrigin(v tour.View, card string, height int) (x, y int) {
	tip := v.Placement.Tooltip
	cardHeight := lipgloss.Height(card)

	x = int(math.Round(tip.Left))
	switch tip.Anchor {
	case tour.AnchorBottom:
		y = height - int(math.Round(tip.Offset)) - cardHeight
	default:
		y = int(math.Round(tip.Offset))
	}
	y += int(math.Round(v.Frame.TooltipLift / liftPerRow))
	return x, clampInt(y, 0, max(height-cardHeight, 0))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
