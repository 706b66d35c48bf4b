// Package tour implements the guided onboarding tour engine: the step
// catalog, spotlight/tooltip geometry, animation sequencing and the
// controller state machine that ties them to persistence and notification
// permission.
//
// The package has no rendering dependencies. Hosts drive a Controller from a
// single event loop and project Controller.View onto their own widgets.
package tour

// Step keys of the default catalog. KeyNotifications is the only full-screen
// step and is never looked up in a TargetRegistry.
const (
	KeyDateNavigation = "dateNavigation"
	KeyScorePill      = "scorePill"
	KeyLabels         = "labels"
	KeyNotifications  = "notifications"
	KeySettingsButton = "settingsButton"
)

// SkipThreshold is the first step index at which "Skip Tour" is no longer
// offered. Fixed policy.
const SkipThreshold = 3

// TooltipPosition says on which side of its target a tooltip card sits.
type TooltipPosition int

const (
	TooltipBottom TooltipPosition = iota
	TooltipTop
)

func (p TooltipPosition) String() string {
	switch p {
	case TooltipBottom:
		return "bottom"
	case TooltipTop:
		return "top"
	default:
		return "unknown"
	}
}

// Step describes one stop of the tour. Steps are immutable once built.
type Step struct {
	Key             string
	Title           string
	Description     string
	Icon            string
	TooltipPosition TooltipPosition
	IsFullScreen    bool
}

// Catalog is the fixed, ordered sequence of tour steps. Order is both the
// presentation order and the basis for the skip policy.
type Catalog struct {
	steps []Step
}

// NewCatalog builds a catalog from steps in presentation order.
func NewCatalog(steps ...Step) Catalog {
	cp := make([]Step, len(steps))
	copy(cp, steps)
	return Catalog{steps: cp}
}

// DefaultCatalog returns the five-step tour of the game summaries screen.
func DefaultCatalog() Catalog {
	return NewCatalog(
		Step{
			Key:             KeyDateNavigation,
			Title:           "Browse Games",
			Description:     "Swipe left or right to see past games and upcoming schedules. Yesterday's games are shown by default.",
			Icon:            "📅",
			TooltipPosition: TooltipBottom,
		},
		Step{
			Key:             KeyScorePill,
			Title:           "Excitement Score",
			Description:     "Every game gets a score from 1 to 10. Higher means more drama, closer finishes, and memorable moments. A 10 is an instant classic you can't miss!",
			Icon:            "🔥",
			TooltipPosition: TooltipBottom,
		},
		Step{
			Key:             KeyLabels,
			Title:           "Game Labels",
			Description:     "Over 30 unique labels highlight what made each game special: wild comebacks, clutch shots, scoring explosions, and more. All calculated from real game data!",
			Icon:            "🏷️",
			TooltipPosition: TooltipTop,
		},
		Step{
			Key:             KeyNotifications,
			Title:           "Morning Alerts",
			Description:     "Get a single notification each morning with a quick preview of last night's best games. Never miss a must-watch recap!",
			Icon:            "🔔",
			TooltipPosition: TooltipBottom,
			IsFullScreen:    true,
		},
		Step{
			Key:             KeySettingsButton,
			Title:           "Settings & More",
			Description:     "Manage notifications and labels, or check out Behind the Scenes to learn more about the app and discover ways to support the project.",
			Icon:            "⚙️",
			TooltipPosition: TooltipBottom,
		},
	)
}

// StepAt returns the step at index. Bounds are the caller's responsibility.
func (c Catalog) StepAt(index int) Step {
	return c.steps[index]
}

// Count returns the number of steps.
func (c Catalog) Count() int {
	return len(c.steps)
}

// IsFullScreen reports whether the step at index has no spotlight target.
func (c Catalog) IsFullScreen(index int) bool {
	return c.steps[index].IsFullScreen
}

// IsLastIndex reports whether index is the final step.
func (c Catalog) IsLastIndex(index int) bool {
	return index == len(c.steps)-1
}

// Index returns the position of the step with the given key, or -1.
func (c Catalog) Index(key string) int {
	for i, s := range c.steps {
		if s.Key == key {
			return i
		}
	}
	return -1
}

// Steps returns a copy of the ordered steps.
func (c Catalog) Steps() []Step {
	cp := make([]Step, len(c.steps))
	copy(cp, c.steps)
	return cp
}

// CanSkip reports whether "Skip Tour" is permitted at index.
func CanSkip(index int) bool {
	return index < SkipThreshold
}
