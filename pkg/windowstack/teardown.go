package windowstack

import (
	"sync"

	"go.uber.org/atomic"
)

// Teardown is the handle of a running (or finished) Home.
// At most one is active per Controller; starting another Home or a Destroy
// supersedes it.
type Teardown struct {
	done     chan struct{}
	finished *atomic.Bool

	mu     sync.Mutex
	cancel func()
	err    error

	// remaining is only touched from scheduler ticks, which never overlap.
	remaining int
}

func newTeardown(remaining int) *Teardown {
	return &Teardown{
		done:      make(chan struct{}),
		finished:  atomic.NewBool(false),
		remaining: remaining,
	}
}

func finishedTeardown(err error) *Teardown {
	t := newTeardown(0)
	t.finish(err)
	return t
}

// Stop cancels further ticks. Screens already closed stay closed.
func (t *Teardown) Stop() {
	t.finish(ErrStopped)
}

// Done is closed once the teardown completes, fails or is cancelled.
func (t *Teardown) Done() <-chan struct{} {
	return t.done
}

// Active reports whether the teardown is still ticking.
func (t *Teardown) Active() bool {
	return !t.finished.Load()
}

// Err returns why the teardown ended: nil on completion, ErrSuperseded,
// ErrStopped, or the error from closing a screen. It is nil while active.
func (t *Teardown) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

func (t *Teardown) setCancel(cancel func()) {
	t.mu.Lock()
	if t.finished.Load() {
		t.mu.Unlock()
		cancel()
		return
	}
	t.cancel = cancel
	t.mu.Unlock()
}

func (t *Teardown) finish(err error) bool {
	if !t.finished.CompareAndSwap(false, true) {
		return false
	}

	t.mu.Lock()
	t.err = err
	cancel := t.cancel
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	close(t.done)
	return true
}

// Home closes every pushed screen.
//
// Animated (the zero HomeOptions) closes one screen per tick so the user sees
// each of them go; the returned Teardown tracks progress. Instant closes every
// screen below the top first, then the top, so only the last close is visible;
// it returns an already finished Teardown.
func (c *Controller) Home(opts HomeOptions) (*Teardown, error) {
	c.supersede()

	if opts.Instant {
		c.metrics.teardowns.WithLabelValues("instant").Inc()
		err := c.homeInstant()
		return finishedTeardown(err), err
	}

	expected := c.Size()
	if expected == 0 {
		return finishedTeardown(nil), nil
	}

	c.metrics.teardowns.WithLabelValues("animated").Inc()
	c.logger.Debug("Starting animated home", "depth", expected, "interval", c.tick)

	t := newTeardown(expected)
	c.mu.Lock()
	c.active = t
	c.mu.Unlock()

	t.setCancel(c.scheduler.Every(c.tick, func() { c.homeTick(t) }))
	return t, nil
}

// homeTick issues at most one Back per tick, and only when the stack length
// matches what the previous tick left behind. A larger length means the last
// close has not landed yet; a smaller one means something else closed a screen.
func (c *Controller) homeTick(t *Teardown) {
	if !t.Active() {
		return
	}

	n := c.Size()
	switch {
	case n > t.remaining:
		return
	case n < t.remaining:
		t.remaining = n
		if n == 0 || c.topIsDockedRoot(n) {
			t.finish(nil)
		}
		return
	}

	if t.remaining == 0 {
		t.finish(nil)
		return
	}

	if err := c.Back(); err != nil {
		c.logger.Error("Animated home failed", "error", err)
		t.finish(err)
		return
	}
	t.remaining--

	if t.remaining == 0 {
		t.finish(nil)
		return
	}

	if c.topIsDockedRoot(t.remaining) {
		t.finish(nil)
	}
}

// topIsDockedRoot reports whether entry n-1, the top once the stack holds n
// entries, is the docked root. Animated home never closes it.
func (c *Controller) topIsDockedRoot(n int) bool {
	c.mu.Lock()
	top, ok := c.stack.at(n - 1)
	c.mu.Unlock()
	if ok && top.DockedRoot {
		c.logger.Debug("Animated home reached the docked root", "remaining", n)
		return true
	}
	return false
}

func (c *Controller) homeInstant() error {
	entries := c.Entries()
	if len(entries) == 0 {
		return nil
	}

	last := entries[len(entries)-1]
	rest := entries[:len(entries)-1]

	for i, e := range rest {
		// Closing the docked root would tear the drawer down before the top closes.
		if i == 0 && e.DockedRoot {
			continue
		}
		if err := c.Close(e.Screen); err != nil {
			return err
		}
	}
	return c.Close(last.Screen)
}

// Destroy tears down the whole stack: the drawer if one is given, otherwise
// the root container (ordered-stack) or every pushed screen (flat).
// OnComplete runs once the top-level close notification fires. When there
// is nothing to tear down Destroy does nothing and OnComplete is not called.
func (c *Controller) Destroy(opts DestroyOptions) error {
	c.supersede()
	if opts.Dock != nil || c.Size() > 0 || c.hasRootContainer() {
		c.metrics.teardowns.WithLabelValues("destroy").Inc()
	}

	if opts.Dock != nil {
		if opts.OnComplete != nil {
			c.platform.NotifyDockClosed(opts.Dock, opts.OnComplete)
		}
		return NewHostError("close_dock", opts.Dock.Close())
	}

	return c.platform.DestroyAll(c.Entries(), opts.OnComplete)
}

func (c *Controller) hasRootContainer() bool {
	p, ok := c.platform.(interface{ Container() Container })
	return ok && p.Container() != nil
}

// supersede cancels the active animated Home, if any.
func (c *Controller) supersede() {
	c.mu.Lock()
	t := c.active
	c.active = nil
	c.mu.Unlock()

	if t != nil && t.finish(ErrSuperseded) {
		c.logger.Debug("Superseded running animated home")
	}
}
