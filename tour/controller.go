package tour

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/tour/errors"
)

// Phase is the controller's position in the tour lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseChecking
	PhaseInactive
	PhasePending
	PhaseActive
	PhaseCompleting
	PhaseDone
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseChecking:
		return "checking"
	case PhaseInactive:
		return "inactive"
	case PhasePending:
		return "pending"
	case PhaseActive:
		return "active"
	case PhaseCompleting:
		return "completing"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// State is a snapshot of the controller. It is rebuilt each run and never
// persisted. IsVisible implies HasCheckedPersistence and a valid index.
type State struct {
	Phase                 Phase
	HasCheckedPersistence bool
	IsVisible             bool
	CurrentStepIndex      int
}

// Result is the outcome of an Op. Hosts pass it back unchanged through
// Controller.Deliver.
type Result interface {
	isResult()
}

type persistenceRead struct {
	completed bool
	err       error
}

func (persistenceRead) isResult() {}

type permissionOutcome struct {
	granted bool
	err     error
}

func (permissionOutcome) isResult() {}

// Op is blocking gateway work. The host runs it off its event loop and
// delivers the Result back on the loop.
type Op func(ctx context.Context) Result

// Options configures a Controller.
type Options struct {
	Catalog       Catalog
	Persistence   PersistenceGateway
	Notifications NotificationGateway
	Clock         Clock
	Logger        *logrus.Entry
	// CompletionKey overrides the key of the persisted completion flag.
	CompletionKey string

	OnComplete             func()
	OnNotificationsEnabled func()
}

// Controller is the tour state machine. All methods must be called from a
// single goroutine (the host's event loop).
type Controller struct {
	catalog       Catalog
	persistence   PersistenceGateway
	notifications NotificationGateway
	clock         Clock
	log           *logrus.Entry
	key           string
	runID         string

	onComplete             func()
	onNotificationsEnabled func()

	coord   *Coordinator
	targets TargetRegistry
	screen  Size
	layout  Layout

	phase              Phase
	checked            bool
	index              int
	pendingSince       time.Time
	awaitingPermission bool
	exitSettled        bool
	notified           bool
	completed          bool
}

// NewController validates opts and returns an idle controller.
func NewController(opts Options) (*Controller, error) {
	if opts.Persistence == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "tour controller requires a persistence gateway")
	}
	catalog := opts.Catalog
	if catalog.Count() == 0 {
		catalog = DefaultCatalog()
	}
	notifications := opts.Notifications
	if notifications == nil {
		notifications = noNotifications{}
	}
	clock := opts.Clock
	if clock == nil {
		clock = SystemClock
	}
	key := opts.CompletionKey
	if key == "" {
		key = CompletionKey
	}

	runID := uuid.NewString()
	logger := opts.Logger
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = logrus.NewEntry(discard)
	}

	return &Controller{
		catalog:                catalog,
		persistence:            opts.Persistence,
		notifications:          notifications,
		clock:                  clock,
		log:                    logger.WithField("run", runID),
		key:                    key,
		runID:                  runID,
		onComplete:             opts.OnComplete,
		onNotificationsEnabled: opts.OnNotificationsEnabled,
		coord:                  NewCoordinator(clock),
		targets:                TargetRegistry{},
		layout:                 DefaultLayout(),
		phase:                  PhaseIdle,
	}, nil
}

// RunID identifies this controller instance in logs.
func (c *Controller) RunID() string { return c.runID }

// Catalog returns the steps this controller presents.
func (c *Controller) Catalog() Catalog { return c.catalog }

// SetTargets replaces the measured target rectangles.
func (c *Controller) SetTargets(targets TargetRegistry) {
	if targets == nil {
		targets = TargetRegistry{}
	}
	c.targets = targets
}

// SetScreen sets the screen size geometry is resolved against.
func (c *Controller) SetScreen(size Size) { c.screen = size }

// SetLayout overrides the geometry constants, e.g. with cell-scaled values.
func (c *Controller) SetLayout(layout Layout) { c.layout = layout }

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	return State{
		Phase:                 c.phase,
		HasCheckedPersistence: c.checked,
		IsVisible:             c.phase == PhaseActive || c.phase == PhaseCompleting,
		CurrentStepIndex:      c.index,
	}
}

// Start moves Idle to Checking and returns the persistence read to run.
func (c *Controller) Start() (Op, error) {
	if c.phase != PhaseIdle {
		return nil, c.illegal("start")
	}
	c.transition(PhaseChecking)

	gw, key := c.persistence, c.key
	return func(ctx context.Context) Result {
		value, ok, err := gw.Get(ctx, key)
		return persistenceRead{
			completed: err == nil && ok && IsCompleted(value),
			err:       err,
		}
	}, nil
}

// Deliver applies the Result of an Op previously returned by Start or
// EnableNotifications.
func (c *Controller) Deliver(r Result) error {
	switch r := r.(type) {
	case persistenceRead:
		return c.onPersistenceRead(r)
	case permissionOutcome:
		return c.onPermissionOutcome(r)
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown tour result")
	}
}

func (c *Controller) onPersistenceRead(r persistenceRead) error {
	if c.phase != PhaseChecking {
		return c.illegal("persistence result")
	}
	c.checked = true

	if r.err != nil {
		c.log.WithError(r.err).Warn("Failed to read tour completion flag, showing tour")
	}
	if r.completed {
		c.transition(PhaseInactive)
		return nil
	}

	c.pendingSince = c.clock.Now()
	c.transition(PhasePending)
	return nil
}

// Tick advances time-driven work: the activation delay, animations, and the
// final Completing to Done step once the exit fade has settled.
func (c *Controller) Tick(ctx context.Context) {
	if c.phase == PhasePending && c.clock.Now().Sub(c.pendingSince) >= ActivationDelay {
		c.activate()
	}

	c.coord.Tick()

	if c.phase == PhaseCompleting && c.exitSettled {
		c.finish(ctx)
	}
}

// Next advances to the following step, or completes the tour on the last one.
func (c *Controller) Next() error {
	if err := c.requireActive("next"); err != nil {
		return err
	}
	c.advance()
	return nil
}

// Skip dismisses the tour. Only the first SkipThreshold steps may be skipped.
func (c *Controller) Skip() error {
	if err := c.requireActive("skip"); err != nil {
		return err
	}
	if !CanSkip(c.index) {
		return c.illegal("skip")
	}
	c.beginCompleting("skipped")
	return nil
}

// EnableNotifications starts the permission request on the notifications
// step. The tour advances once the returned Op's Result is delivered,
// whatever the outcome.
func (c *Controller) EnableNotifications() (Op, error) {
	if err := c.requireActive("enable notifications"); err != nil {
		return nil, err
	}
	if c.catalog.StepAt(c.index).Key != KeyNotifications {
		return nil, c.illegal("enable notifications")
	}
	c.awaitingPermission = true
	c.log.WithField("index", c.index).Debug("Requesting notification permission")

	gw := c.notifications
	return func(ctx context.Context) Result {
		res, err := gw.Request(ctx)
		return permissionOutcome{granted: err == nil && res.Success, err: err}
	}, nil
}

func (c *Controller) onPermissionOutcome(r permissionOutcome) error {
	if c.phase != PhaseActive || !c.awaitingPermission {
		return c.illegal("notification result")
	}
	c.awaitingPermission = false

	switch {
	case r.err != nil:
		c.log.WithError(errors.NotificationFailed(r.err)).Warn("Notification request failed, continuing tour")
	case !r.granted:
		c.log.Debug("Notification permission not granted")
	}

	if r.granted && !c.notified {
		c.notified = true
		if c.onNotificationsEnabled != nil {
			c.onNotificationsEnabled()
		}
	}

	c.advance()
	return nil
}

func (c *Controller) activate() {
	c.index = 0
	c.transition(PhaseActive)
	c.coord.Enter(func() {
		c.log.Debug("Tour overlay shown")
	})
	c.coord.ReplayStep()
}

func (c *Controller) advance() {
	if c.catalog.IsLastIndex(c.index) {
		c.beginCompleting("finished")
		return
	}
	c.index++
	c.log.WithFields(logrus.Fields{
		"index": c.index,
		"step":  c.catalog.StepAt(c.index).Key,
	}).Debug("Tour step advanced")
	c.coord.ReplayStep()
}

func (c *Controller) beginCompleting(reason string) {
	c.exitSettled = false
	c.log.WithField("reason", reason).Info("Tour dismissed")
	c.transition(PhaseCompleting)
	c.coord.Exit(func() {
		c.exitSettled = true
	})
}

func (c *Controller) finish(ctx context.Context) {
	if err := c.persistence.Set(ctx, c.key, CompletionValue); err != nil {
		// The tour may show again next launch; accepted.
		c.log.WithError(err).Warn("Failed to persist tour completion")
	}
	c.transition(PhaseDone)

	if !c.completed {
		c.completed = true
		if c.onComplete != nil {
			c.onComplete()
		}
	}
}

func (c *Controller) requireActive(action string) error {
	if c.phase != PhaseActive || c.awaitingPermission {
		return c.illegal(action)
	}
	return nil
}

func (c *Controller) illegal(action string) error {
	phase := c.phase.String()
	if c.awaitingPermission {
		phase = "awaiting notification permission"
	}
	return errors.IllegalTransition(action, phase, c.index)
}

func (c *Controller) transition(to Phase) {
	c.log.WithFields(logrus.Fields{
		"from":  c.phase.String(),
		"to":    to.String(),
		"index": c.index,
	}).Debug("Tour transition")
	c.phase = to
}
