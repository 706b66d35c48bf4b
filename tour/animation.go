package tour

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Sequencing constants.
const (
	ActivationDelay   = 800 * time.Millisecond
	EntryFadeDuration = 400 * time.Millisecond
	ExitFadeDuration  = 300 * time.Millisecond
)

const (
	springFPS                 = 60
	springFrame               = time.Second / springFPS
	spotlightAngularFrequency = 10.0
	// A damping ratio of 1 is critically damped: fastest approach, no overshoot.
	spotlightDampingRatio = 1.0
	springRest            = 1e-3

	spotlightStartScale = 0.8
	tooltipLift         = 20.0
)

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// EaseInOut is a cubic ease-in-out curve.
func EaseInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Channel identifies one animated value.
type Channel int

const (
	ChannelOverlay Channel = iota
	ChannelSpotlight
	channelCount
)

type trackKind int

const (
	trackTiming trackKind = iota
	trackSpring
)

type track struct {
	kind     trackKind
	from     float64
	to       float64
	start    time.Time
	duration time.Duration
	easing   Easing

	spring   harmonica.Spring
	velocity float64
	last     time.Time
	carry    time.Duration

	onSettle func()
}

// Animator is a timed-interpolation service. Each channel holds one value
// and at most one running track; starting a new track on a channel replaces
// the old one and drops its settle continuation (last write wins).
type Animator struct {
	clock  Clock
	values [channelCount]float64
	tracks [channelCount]*track
}

// NewAnimator creates an animator reading time from clock.
func NewAnimator(clock Clock) *Animator {
	if clock == nil {
		clock = SystemClock
	}
	return &Animator{clock: clock}
}

// Value returns the current value of ch.
func (a *Animator) Value(ch Channel) float64 {
	return a.values[ch]
}

// Set jumps ch to v and cancels its track.
func (a *Animator) Set(ch Channel, v float64) {
	a.tracks[ch] = nil
	a.values[ch] = v
}

// Timing interpolates ch from its current value to `to` over d. onSettle
// runs from Tick once the final value has been applied.
func (a *Animator) Timing(ch Channel, to float64, d time.Duration, easing Easing, onSettle func()) {
	if easing == nil {
		easing = Linear
	}
	a.tracks[ch] = &track{
		kind:     trackTiming,
		from:     a.values[ch],
		to:       to,
		start:    a.clock.Now(),
		duration: d,
		easing:   easing,
		onSettle: onSettle,
	}
}

// Spring drives ch toward `to` with a critically damped spring.
func (a *Animator) Spring(ch Channel, to float64, onSettle func()) {
	a.tracks[ch] = &track{
		kind:     trackSpring,
		to:       to,
		spring:   harmonica.NewSpring(harmonica.FPS(springFPS), spotlightAngularFrequency, spotlightDampingRatio),
		last:     a.clock.Now(),
		onSettle: onSettle,
	}
}

// Animating reports whether ch has a running track.
func (a *Animator) Animating(ch Channel) bool {
	return a.tracks[ch] != nil
}

// Idle reports whether no channel is animating.
func (a *Animator) Idle() bool {
	for _, tr := range a.tracks {
		if tr != nil {
			return false
		}
	}
	return true
}

// Tick advances every track to the clock's current time. Settle
// continuations run after all values have been updated, in channel order.
func (a *Animator) Tick() {
	now := a.clock.Now()
	var settled []func()

	for ch := Channel(0); ch < channelCount; ch++ {
		tr := a.tracks[ch]
		if tr == nil {
			continue
		}

		var done bool
		switch tr.kind {
		case trackTiming:
			done = a.stepTiming(ch, tr, now)
		case trackSpring:
			done = a.stepSpring(ch, tr, now)
		}

		if done {
			a.tracks[ch] = nil
			if tr.onSettle != nil {
				settled = append(settled, tr.onSettle)
			}
		}
	}

	for _, fn := range settled {
		fn()
	}
}

func (a *Animator) stepTiming(ch Channel, tr *track, now time.Time) bool {
	elapsed := now.Sub(tr.start)
	if tr.duration <= 0 || elapsed >= tr.duration {
		a.values[ch] = tr.to
		return true
	}
	if elapsed < 0 {
		elapsed = 0
	}
	p := tr.easing(float64(elapsed) / float64(tr.duration))
	a.values[ch] = tr.from + (tr.to-tr.from)*p
	return false
}

func (a *Animator) stepSpring(ch Channel, tr *track, now time.Time) bool {
	if now.After(tr.last) {
		tr.carry += now.Sub(tr.last)
	}
	tr.last = now

	pos := a.values[ch]
	for tr.carry >= springFrame {
		tr.carry -= springFrame
		pos, tr.velocity = tr.spring.Update(pos, tr.velocity, tr.to)
		if math.Abs(pos-tr.to) < springRest && math.Abs(tr.velocity) < springRest {
			a.values[ch] = tr.to
			return true
		}
	}
	a.values[ch] = pos
	return false
}

// Frame is the set of visual values a renderer applies for the current
// instant.
type Frame struct {
	OverlayOpacity   float64
	SpotlightScale   float64
	SpotlightOpacity float64
	TooltipOpacity   float64
	// TooltipLift is how far below its resting place the card is drawn.
	TooltipLift float64
}

// Coordinator sequences the tour's entry, per-step and exit transitions on
// top of an Animator.
type Coordinator struct {
	anim    *Animator
	shown   bool
	exiting bool
}

// NewCoordinator creates a coordinator reading time from clock.
func NewCoordinator(clock Clock) *Coordinator {
	return &Coordinator{anim: NewAnimator(clock)}
}

// Enter fades the overlay in from fully transparent. onShown runs once the
// fade has finished.
func (c *Coordinator) Enter(onShown func()) {
	c.shown = false
	c.exiting = false
	c.anim.Set(ChannelOverlay, 0)
	c.anim.Timing(ChannelOverlay, 1, EntryFadeDuration, EaseInOut, func() {
		c.shown = true
		if onShown != nil {
			onShown()
		}
	})
}

// ReplayStep restarts the spotlight transition from its start value.
func (c *Coordinator) ReplayStep() {
	c.anim.Set(ChannelSpotlight, 0)
	c.anim.Spring(ChannelSpotlight, 1, nil)
}

// Exit fades the overlay out from wherever it currently is. onSettled runs
// from Tick once opacity has reached zero, and never earlier.
func (c *Coordinator) Exit(onSettled func()) {
	c.exiting = true
	c.anim.Timing(ChannelOverlay, 0, ExitFadeDuration, EaseInOut, func() {
		c.shown = false
		if onSettled != nil {
			onSettled()
		}
	})
}

// Tick advances all running transitions.
func (c *Coordinator) Tick() {
	c.anim.Tick()
}

// Shown reports whether the entry fade has completed and no exit has
// started since.
func (c *Coordinator) Shown() bool {
	return c.shown && !c.exiting
}

// Exiting reports whether an exit fade has been started.
func (c *Coordinator) Exiting() bool {
	return c.exiting
}

// Idle reports whether nothing is animating.
func (c *Coordinator) Idle() bool {
	return c.anim.Idle()
}

// Frame returns the current visual values.
func (c *Coordinator) Frame() Frame {
	p := c.anim.Value(ChannelSpotlight)
	return Frame{
		OverlayOpacity:   c.anim.Value(ChannelOverlay),
		SpotlightScale:   spotlightStartScale + (1-spotlightStartScale)*p,
		SpotlightOpacity: p,
		TooltipOpacity:   p,
		TooltipLift:      tooltipLift * (1 - p),
	}
}
