package tour

// Button labels.
const (
	LabelNext                = "Next"
	LabelFinish              = "Let's Go"
	LabelSkip                = "Skip Tour"
	LabelEnableNotifications = "Enable Notifications"
	LabelLater               = "Maybe Later"
)

// DotState is the rendering state of one progress dot.
type DotState int

const (
	DotUpcoming DotState = iota
	DotActive
	DotCompleted
)

// View is everything a renderer needs to draw the current frame of the tour.
// It is a pure projection of controller state, geometry and animation values.
type View struct {
	Step      Step
	Index     int
	Count     int
	Placement Placement
	Frame     Frame
	Progress  []DotState

	CanSkip            bool
	IsLast             bool
	IsNotificationStep bool
	PrimaryLabel       string
	AwaitingPermission bool
	// Shown is false until the entry fade has finished.
	Shown bool
}

// View projects the controller onto presentation data. ok is false when
// nothing should be drawn.
func (c *Controller) View() (view View, ok bool) {
	if !c.State().IsVisible {
		return View{}, false
	}

	step := c.catalog.StepAt(c.index)
	var target *Rect
	if !step.IsFullScreen {
		if r, found := c.targets.Lookup(step.Key); found {
			target = &r
		}
	}

	progress := make([]DotState, c.catalog.Count())
	for i := range progress {
		switch {
		case i == c.index:
			progress[i] = DotActive
		case i < c.index:
			progress[i] = DotCompleted
		}
	}

	label := LabelNext
	isLast := c.catalog.IsLastIndex(c.index)
	if isLast {
		label = LabelFinish
	}

	return View{
		Step:               step,
		Index:              c.index,
		Count:              c.catalog.Count(),
		Placement:          Resolve(step, target, c.screen, c.layout),
		Frame:              c.coord.Frame(),
		Progress:           progress,
		CanSkip:            c.phase == PhaseActive && CanSkip(c.index),
		IsLast:             isLast,
		IsNotificationStep: step.Key == KeyNotifications,
		PrimaryLabel:       label,
		AwaitingPermission: c.awaitingPermission,
		Shown:              c.coord.Shown(),
	}, true
}
