package tourview

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// canvas is the base screen as a fixed grid of styled lines.
type canvas struct {
	lines []string
	width int
}

func newCanvas(base string, width, height int) *canvas {
	lines := strings.Split(base, "\n")
	if base == "" {
		lines = nil
	}
	out := make([]string, height)
	for i := range out {
		if i < len(lines) {
			out[i] = fit(lines[i], width)
		} else {
			out[i] = strings.Repeat(" ", width)
		}
	}
	return &canvas{lines: out, width: width}
}

// cut returns the cells [left, right) of row.
func (c *canvas) cut(row, left, right int) string {
	if left >= right {
		return ""
	}
	return ansi.TruncateLeft(ansi.Truncate(c.lines[row], right, ""), left, "")
}

// place draws block with its top-left cell at (x, y). Cells outside the
// canvas are clipped.
func (c *canvas) place(block string, x, y int) {
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= len(c.lines) {
			continue
		}
		c.put(row, x, line)
	}
}

func (c *canvas) put(row, x int, s string) {
	if x >= c.width {
		return
	}
	if x < 0 {
		s = ansi.TruncateLeft(s, -x, "")
		x = 0
	}
	w := ansi.StringWidth(s)
	if x+w > c.width {
		s = ansi.Truncate(s, c.width-x, "")
		w = c.width - x
	}
	c.lines[row] = c.cut(row, 0, x) + s + c.cut(row, x+w, c.width)
}

func (c *canvas) String() string {
	return strings.Join(c.lines, "\n")
}

// fit pads or truncates s to exactly width cells.
func fit(s string, width int) string {
	w := ansi.StringWidth(s)
	switch {
	case w > width:
		return ansi.Truncate(s, width, "")
	case w < width:
		return s + strings.Repeat(" ", width-w)
	default:
		return s
	}
}
