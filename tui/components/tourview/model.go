// Package tourview hosts a tour.Controller inside a Bubble Tea program. It
// runs gateway work as commands, drives the controller from a frame ticker,
// maps keys to tour actions and draws the overlay on top of the host view.
package tourview

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/tour/logging"
	"github.com/grovetools/tour/tour"
	"github.com/grovetools/tour/tui/keymap"
	"github.com/grovetools/tour/tui/theme"
)

// DefaultFrameInterval is one frame at 60fps.
const DefaultFrameInterval = time.Second / 60

// ResultMsg carries a finished tour.Op back to the event loop.
type ResultMsg struct {
	Result tour.Result
}

// FrameMsg is one tick of the animation clock.
type FrameMsg time.Time

// Model wraps a controller for use as a Bubble Tea sub-component.
type Model struct {
	ctl      *tour.Controller
	keys     keymap.KeyMap
	renderer Renderer
	ctx      context.Context
	interval time.Duration
	log      *logrus.Entry

	width   int
	height  int
	ticking bool
}

// Option configures a Model.
type Option func(*Model)

// WithKeys sets the key bindings.
func WithKeys(km keymap.KeyMap) Option {
	return func(m *Model) {
		m.keys = km
		m.renderer.Keys = km
	}
}

// WithTheme sets the overlay theme.
func WithTheme(t *theme.Theme) Option {
	return func(m *Model) { m.renderer.Theme = t }
}

// WithFrameInterval sets the animation tick period.
func WithFrameInterval(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithContext sets the context gateway work runs under.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// WithLogger sets the logger.
func WithLogger(log *logrus.Entry) Option {
	return func(m *Model) { m.log = log }
}

// New wraps ctl. The controller is switched to the terminal cell layout.
func New(ctl *tour.Controller, opts ...Option) *Model {
	km := keymap.New()
	m := &Model{
		ctl:      ctl,
		keys:     km,
		renderer: NewRenderer(km),
		ctx:      context.Background(),
		interval: DefaultFrameInterval,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = logging.NewLogger("tourview")
	}
	ctl.SetLayout(CellLayout())
	return m
}

// Controller returns the wrapped controller.
func (m *Model) Controller() *tour.Controller {
	return m.ctl
}

// Init starts the tour: the persisted flag is read and the frame ticker
// begins.
func (m *Model) Init() tea.Cmd {
	op, err := m.ctl.Start()
	if err != nil {
		m.log.WithError(err).Warn("Failed to start tour")
		return nil
	}
	return tea.Batch(m.run(op), m.startTicking())
}

// SetTargets registers the measured host widgets, in cells.
func (m *Model) SetTargets(targets tour.TargetRegistry) {
	m.ctl.SetTargets(targets)
}

// Capturing reports whether the overlay owns keyboard input.
func (m *Model) Capturing() bool {
	return m.ctl.State().Phase == tour.PhaseActive
}

// Keys returns the bindings with enabled states matching the current step.
func (m *Model) Keys() keymap.KeyMap {
	km := m.keys
	v, ok := m.ctl.View()
	active := ok && m.Capturing() && !v.AwaitingPermission

	km.Next.SetEnabled(active && !v.IsNotificationStep)
	km.Skip.SetEnabled(active && v.CanSkip)
	km.Enable.SetEnabled(active && v.IsNotificationStep)
	km.Later.SetEnabled(active && v.IsNotificationStep)
	return km
}

// Update handles a message. handled is true when the message belonged to
// the tour and must not reach the host.
func (m *Model) Update(msg tea.Msg) (handled bool, cmd tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ctl.SetScreen(tour.Size{Width: float64(msg.Width), Height: float64(msg.Height)})
		return false, nil

	case ResultMsg:
		if err := m.ctl.Deliver(msg.Result); err != nil {
			m.log.WithError(err).Debug("Dropped tour result")
		}
		return true, m.startTicking()

	case FrameMsg:
		m.ctl.Tick(m.ctx)
		if m.needsFrames() {
			return true, m.tick()
		}
		m.ticking = false
		return true, nil

	case tea.KeyMsg:
		if !m.Capturing() {
			return false, nil
		}
		return true, m.handleKey(msg)
	}
	return false, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	km := m.Keys()
	var err error

	switch {
	case key.Matches(msg, km.Enable):
		var op tour.Op
		op, err = m.ctl.EnableNotifications()
		if err == nil {
			return m.run(op)
		}
	case key.Matches(msg, km.Later), key.Matches(msg, km.Next):
		err = m.ctl.Next()
	case key.Matches(msg, km.Skip):
		err = m.ctl.Skip()
	}

	if err != nil {
		m.log.WithError(err).Debug("Tour action rejected")
	}
	return m.startTicking()
}

// View draws the overlay over base.
func (m *Model) View(base string) string {
	v, ok := m.ctl.View()
	if !ok {
		return base
	}
	return m.renderer.Render(base, v, m.width, m.height)
}

func (m *Model) run(op tour.Op) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return ResultMsg{Result: op(ctx)}
	}
}

func (m *Model) needsFrames() bool {
	switch m.ctl.State().Phase {
	case tour.PhasePending, tour.PhaseActive, tour.PhaseCompleting:
		return true
	default:
		return false
	}
}

func (m *Model) startTicking() tea.Cmd {
	if m.ticking || !m.needsFrames() {
		return nil
	}
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	m.ticking = true
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
