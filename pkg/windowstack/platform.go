package windowstack

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/BrandonKowalski/windowstack/pkg/windowstack/internal"
)

// Platform adapts one host navigation model to the controller's push/pop view.
// It is chosen once when the Controller is built and never re-checked.
type Platform interface {
	// Name identifies the platform in logs.
	Name() string

	// NeedsRoot reports whether the next non-docked open must be a root presentation.
	NeedsRoot() bool

	// PresentRoot shows s as the new top-level screen, replacing any earlier root.
	// With opts.Dock set, s goes into the drawer slot target instead of full screen.
	PresentRoot(s Screen, target DockTarget, opts OpenOptions) error

	// PresentChild shows s above the current top.
	PresentChild(s Screen, opts OpenOptions) error

	// Dismiss closes s using the host's own pop primitive.
	Dismiss(s Screen) error

	// DestroyAll closes everything the platform holds. onComplete, when set,
	// is subscribed to the top-level close notification before anything closes.
	DestroyAll(entries []StackEntry, onComplete func()) error

	// NotifyDockClosed subscribes fn to the close notification of the drawer,
	// or of whatever underlying window the platform watches for it.
	NotifyDockClosed(d Drawer, fn func())

	// OnRootClosed registers fn to run when the current root goes away on its own.
	OnRootClosed(fn func())
}

// loggerSetter lets the controller hand its logger to the built-in platforms.
type loggerSetter interface {
	setLogger(l *slog.Logger)
}

// StackPlatform drives a host with a native ordered-stack container.
type StackPlatform struct {
	host   StackHost
	logger *slog.Logger

	mu           sync.Mutex
	container    Container
	onRootClosed func()
}

// NewStackPlatform creates the ordered-stack adapter over host.
func NewStackPlatform(host StackHost) *StackPlatform {
	return &StackPlatform{
		host:   host,
		logger: internal.GetInternalLogger(),
	}
}

func (p *StackPlatform) setLogger(l *slog.Logger) {
	p.logger = l
}

func (p *StackPlatform) Name() string {
	return "stack"
}

func (p *StackPlatform) NeedsRoot() bool {
	return p.current() == nil
}

// Container returns the current root container, or nil.
func (p *StackPlatform) Container() Container {
	return p.current()
}

// AdoptContainer installs a container created outside the controller.
// The next non-docked open pushes onto it.
func (p *StackPlatform) AdoptContainer(c Container) {
	p.install(c)
}

func (p *StackPlatform) PresentRoot(s Screen, target DockTarget, opts OpenOptions) error {
	c, err := p.host.NewContainer(s)
	if err != nil {
		return NewHostError("new_container", err)
	}

	if opts.Dock != nil {
		if err := opts.Dock.SetSlot(target, c); err != nil {
			return NewHostError("set_slot", err)
		}
	} else if err := c.Open(opts); err != nil {
		return NewHostError("open_root", err)
	}

	p.install(c)
	return nil
}

func (p *StackPlatform) PresentChild(s Screen, opts OpenOptions) error {
	c := p.current()
	if c == nil {
		return ErrNoContainer
	}
	return NewHostError("present_child", c.OpenChild(s, opts))
}

func (p *StackPlatform) Dismiss(s Screen) error {
	c := p.current()
	if c == nil {
		return ErrNoContainer
	}
	return NewHostError("dismiss", c.CloseChild(s))
}

// DestroyAll closes the root container, which closes its screens as a unit.
func (p *StackPlatform) DestroyAll(_ []StackEntry, onComplete func()) error {
	c := p.current()
	if c == nil {
		return nil
	}
	if onComplete != nil {
		c.OnClose(onComplete)
	}
	return NewHostError("close_root", c.Close())
}

func (p *StackPlatform) NotifyDockClosed(d Drawer, fn func()) {
	d.OnClose(fn)
}

func (p *StackPlatform) OnRootClosed(fn func()) {
	p.mu.Lock()
	p.onRootClosed = fn
	p.mu.Unlock()
}

func (p *StackPlatform) current() Container {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.container
}

// install replaces the tracked container. The old one is not closed;
// it belongs to whatever it was docked into.
func (p *StackPlatform) install(c Container) {
	p.mu.Lock()
	p.container = c
	p.mu.Unlock()

	c.OnClose(func() {
		p.mu.Lock()
		if p.container != c {
			p.mu.Unlock()
			return
		}
		p.container = nil
		fn := p.onRootClosed
		p.mu.Unlock()

		p.logger.Debug("Root container closed", "platform", p.Name())
		if fn != nil {
			fn()
		}
	})
}

// FlatPlatform drives a host with no container, emulating stack order from
// the controller's own sequence.
type FlatPlatform struct {
	host   FlatHost
	logger *slog.Logger
}

// NewFlatPlatform creates the flat adapter over host.
func NewFlatPlatform(host FlatHost) *FlatPlatform {
	return &FlatPlatform{
		host:   host,
		logger: internal.GetInternalLogger(),
	}
}

func (p *FlatPlatform) setLogger(l *slog.Logger) {
	p.logger = l
}

func (p *FlatPlatform) Name() string {
	return "flat"
}

// NeedsRoot is always false: without a drawer every open is a push.
func (p *FlatPlatform) NeedsRoot() bool {
	return false
}

func (p *FlatPlatform) PresentRoot(s Screen, target DockTarget, opts OpenOptions) error {
	d := opts.Dock
	if d == nil {
		return ErrNoDock
	}

	if err := p.host.Dock(d, s); err != nil {
		return NewHostError("dock", err)
	}

	// The drawer window may not be attached yet; the menu is rebuilt on attach anyway.
	if err := p.host.RefreshMenu(d, s); err != nil {
		p.logger.Warn("Could not refresh drawer menu, continuing", "platform", p.Name(), "error", err)
	}

	return NewHostError("set_slot", d.SetSlot(target, s))
}

func (p *FlatPlatform) PresentChild(s Screen, opts OpenOptions) error {
	return NewHostError("present_child", p.host.Show(s, opts))
}

func (p *FlatPlatform) Dismiss(s Screen) error {
	return NewHostError("dismiss", p.host.Dismiss(s))
}

// DestroyAll dismisses every tracked screen. The host has no ordering
// dependency here, so failures do not stop the remaining dismissals.
func (p *FlatPlatform) DestroyAll(entries []StackEntry, onComplete func()) error {
	if len(entries) == 0 {
		return nil
	}
	if onComplete != nil {
		entries[len(entries)-1].Screen.OnClose(onComplete)
	}

	var errs []error
	for _, e := range entries {
		errs = append(errs, NewHostError("dismiss", p.host.Dismiss(e.Screen)))
	}
	return errors.Join(errs...)
}

func (p *FlatPlatform) NotifyDockClosed(d Drawer, fn func()) {
	if w, ok := d.(DrawerWindower); ok && w.Window() != nil {
		w.Window().OnClose(fn)
		return
	}
	d.OnClose(fn)
}

// OnRootClosed is a no-op: a flat root lives in a drawer the controller does not own.
func (p *FlatPlatform) OnRootClosed(func()) {}
