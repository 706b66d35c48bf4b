package tour

// Geometry defaults, in the same units as the screen size the host supplies.
const (
	DefaultPadding          = 8.0
	DefaultMargin           = 24.0
	DefaultGap              = 16.0
	DefaultFullScreenAnchor = 0.3
	DefaultCornerRadius     = 12.0
)

// Rect is an axis-aligned rectangle in screen coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Expand grows r by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{
		X:      r.X - d,
		Y:      r.Y - d,
		Width:  r.Width + 2*d,
		Height: r.Height + 2*d,
	}
}

// Bottom returns the y coordinate of the lower edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Size is a width/height pair.
type Size struct {
	Width  float64
	Height float64
}

// TargetRegistry maps step keys to measured rectangles. Missing entries mean
// no spotlight is available for that step.
type TargetRegistry map[string]Rect

// Lookup returns the rectangle registered for key.
func (r TargetRegistry) Lookup(key string) (Rect, bool) {
	rect, ok := r[key]
	return rect, ok
}

// Layout holds the constants the resolver works with. Terminal hosts use a
// cell-scaled layout; DefaultLayout carries the point values.
type Layout struct {
	Padding          float64
	Margin           float64
	Gap              float64
	FullScreenAnchor float64
	CornerRadius     float64
}

// DefaultLayout returns the standard layout constants.
func DefaultLayout() Layout {
	return Layout{
		Padding:          DefaultPadding,
		Margin:           DefaultMargin,
		Gap:              DefaultGap,
		FullScreenAnchor: DefaultFullScreenAnchor,
		CornerRadius:     DefaultCornerRadius,
	}
}

// Anchor names the screen edge a tooltip's Offset is measured from.
type Anchor int

const (
	// AnchorTop: Offset is the distance from the screen top to the card top.
	AnchorTop Anchor = iota
	// AnchorBottom: Offset is the distance from the screen bottom to the card bottom.
	AnchorBottom
)

func (a Anchor) String() string {
	if a == AnchorBottom {
		return "bottom"
	}
	return "top"
}

// Spotlight is the cutout in the dimmed overlay.
type Spotlight struct {
	Rect
	CornerRadius float64
}

// Tooltip places the explanation card. Left and Right are insets from the
// screen edges and Width is the resulting card width.
type Tooltip struct {
	Left   float64
	Right  float64
	Width  float64
	Anchor Anchor
	Offset float64
}

// Placement is the resolved presentation geometry of one step.
type Placement struct {
	Spotlight *Spotlight
	Tooltip   Tooltip
}

// HasSpotlight reports whether the overlay has a cutout.
func (p Placement) HasSpotlight() bool {
	return p.Spotlight != nil
}

// Resolve computes the spotlight and tooltip placement for a step. It is
// pure: identical inputs always give identical output. A full-screen step
// ignores target; a nil target degrades to the centred layout.
func Resolve(step Step, target *Rect, screen Size, layout Layout) Placement {
	width := screen.Width - 2*layout.Margin

	if step.IsFullScreen || target == nil {
		return Placement{
			Tooltip: Tooltip{
				Left:   layout.Margin,
				Right:  layout.Margin,
				Width:  width,
				Anchor: AnchorTop,
				Offset: screen.Height * layout.FullScreenAnchor,
			},
		}
	}

	spot := &Spotlight{
		Rect:         target.Expand(layout.Padding),
		CornerRadius: layout.CornerRadius,
	}
	tip := Tooltip{
		Left:  layout.Margin,
		Right: layout.Margin,
		Width: width,
	}
	if step.TooltipPosition == TooltipTop {
		tip.Anchor = AnchorBottom
		tip.Offset = screen.Height - target.Y + layout.Gap
	} else {
		tip.Anchor = AnchorTop
		tip.Offset = target.Bottom() + layout.Gap
	}

	return Placement{Spotlight: spot, Tooltip: tip}
}
