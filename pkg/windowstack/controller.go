package windowstack

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/BrandonKowalski/windowstack/pkg/windowstack/internal"
)

// Controller keeps an ordered view of the screens pushed above the current
// root and keeps it consistent with the host's close notifications.
//
// All host calls are made without holding the controller's lock, because
// hosts are free to deliver close notifications synchronously from inside them.
type Controller struct {
	platform  Platform
	scheduler Scheduler
	tick      time.Duration
	logger    *slog.Logger
	metrics   *metrics

	mu     sync.Mutex
	stack  *stack
	target DockTarget
	active *Teardown
}

// New creates a Controller. Options.Platform is required.
func New(opts Options) *Controller {
	if opts.Platform == nil {
		panic("windowstack: Options.Platform is required")
	}

	c := &Controller{
		platform:  opts.Platform,
		scheduler: opts.Scheduler,
		tick:      opts.TickInterval,
		logger:    opts.Logger,
		metrics:   newMetrics(opts.Registerer),
		stack:     newStack(),
		target:    DockCenter,
	}

	if c.scheduler == nil {
		c.scheduler = NewTickerScheduler(nil)
	}
	if c.tick <= 0 {
		c.tick = DefaultTickInterval
	}
	if c.logger == nil {
		c.logger = internal.GetInternalLogger()
	} else if ls, ok := c.platform.(loggerSetter); ok {
		ls.setLogger(c.logger)
	}
	if opts.DockTarget.Valid() {
		c.target = opts.DockTarget
	}

	c.platform.OnRootClosed(c.resetStack)

	return c
}

// Platform returns the platform the controller was built with.
func (c *Controller) Platform() Platform {
	return c.platform
}

// SetDockTarget sets the drawer slot used by docked opens.
// Unknown values are ignored and the previous target is kept.
func (c *Controller) SetDockTarget(target DockTarget) bool {
	if !target.Valid() {
		c.logger.Debug("Ignoring unknown dock target", "target", int(target))
		return false
	}
	c.mu.Lock()
	c.target = target
	c.mu.Unlock()
	return true
}

// DockTarget returns the configured drawer slot.
func (c *Controller) DockTarget() DockTarget {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

// Open presents s.
//
// If opts.Dock is set, or the platform has no root yet, s becomes the new root:
// it is placed into the drawer (or a fresh root container) and the logical
// stack is reset. Root screens are not tracked. Otherwise s is pushed above
// the current top.
func (c *Controller) Open(s Screen, opts OpenOptions) error {
	if s == nil {
		return errors.New("windowstack: open: nil screen")
	}

	target := opts.Target
	if !target.Valid() {
		target = c.DockTarget()
	}

	root := opts.Dock != nil || c.platform.NeedsRoot()

	c.mu.Lock()
	if c.stack.contains(s) {
		c.mu.Unlock()
		return ErrAlreadyOpen
	}

	if root {
		c.mu.Unlock()

		if err := c.platform.PresentRoot(s, target, opts); err != nil {
			return err
		}

		c.resetStack()
		c.metrics.opens.WithLabelValues("root").Inc()
		c.logger.Debug("Presented root screen", "platform", c.platform.Name(), "docked", opts.Dock != nil, "target", target.String())
	} else {
		c.stack.push(s)
		depth := c.stack.len()
		c.mu.Unlock()

		if err := c.platform.PresentChild(s, opts); err != nil {
			c.mu.Lock()
			c.stack.remove(s)
			c.mu.Unlock()
			return err
		}

		c.metrics.depth.Set(float64(depth))
		c.metrics.opens.WithLabelValues("push").Inc()
		c.logger.Debug("Pushed screen", "platform", c.platform.Name(), "depth", depth)
	}

	s.OnClose(func() { c.prune(s) })
	return nil
}

// Size returns the number of pushed screens. The root is not counted.
func (c *Controller) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stack.len()
}

// Entries returns a copy of the pushed screens, bottom first.
func (c *Controller) Entries() []StackEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stack.snapshot()
}

// Top returns the current (last pushed) entry.
func (c *Controller) Top() (StackEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stack.peek()
}

// Close dismisses s through the platform. On the ordered-stack platform only
// the current top is guaranteed to close; anything else is up to the host.
// Host errors are returned as is.
func (c *Controller) Close(s Screen) error {
	return c.platform.Dismiss(s)
}

// Back closes the current top screen. It does nothing on an empty stack.
func (c *Controller) Back() error {
	top, ok := c.Top()
	if !ok {
		return nil
	}
	return c.Close(top.Screen)
}

// prune is the close handler registered for every opened screen.
func (c *Controller) prune(s Screen) {
	c.mu.Lock()
	removed := c.stack.remove(s)
	depth := c.stack.len()
	c.mu.Unlock()

	if !removed {
		return
	}
	c.metrics.closes.Inc()
	c.metrics.depth.Set(float64(depth))
	c.logger.Debug("Screen closed", "depth", depth)
}

func (c *Controller) resetStack() {
	c.mu.Lock()
	c.stack.clear()
	c.mu.Unlock()
	c.metrics.depth.Set(0)
}
