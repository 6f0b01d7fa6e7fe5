package sdlhost

import (
	"os"
	"sync"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/windowstack/pkg/windowstack"
)

// Drawer is a side-drawer window with a center, left and right slot.
type Drawer struct {
	host   *Host
	window *sdl.Window
	id     uint32

	mu            sync.Mutex
	slots         map[windowstack.DockTarget]windowstack.Screen
	inherited     windowstack.Properties
	menuOwner     windowstack.Screen
	closeHandlers []func()
	closed        bool
}

// NewDrawer creates a drawer and its window.
func (h *Host) NewDrawer(title string, opts WindowOptions) (*Drawer, error) {
	window, id, err := h.createWindow(title, 0, 0, opts)
	if err != nil {
		return nil, err
	}

	d := &Drawer{
		host:   h,
		window: window,
		id:     id,
		slots:  make(map[windowstack.DockTarget]windowstack.Screen),
	}

	h.mu.Lock()
	h.drawers[id] = d
	h.mu.Unlock()
	return d, nil
}

func (d *Drawer) OnClose(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closeHandlers = append(d.closeHandlers, fn)
}

// SetSlot places s into target. The center slot also drives the window title.
func (d *Drawer) SetSlot(target windowstack.DockTarget, s windowstack.Screen) error {
	d.mu.Lock()
	d.slots[target] = s
	d.mu.Unlock()

	if c, ok := s.(*Container); ok {
		c.drawer = d
	}
	if target == windowstack.DockCenter && d.window != nil {
		d.window.SetTitle(d.host.localize(windowstack.PropertiesOf(s).Title))
	}
	return nil
}

// Slot returns the screen in target, or nil.
func (d *Drawer) Slot(target windowstack.DockTarget) windowstack.Screen {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.slots[target]
}

// MenuOwner returns the screen whose menu the drawer shows.
func (d *Drawer) MenuOwner() windowstack.Screen {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.menuOwner
}

func (d *Drawer) inherit(p windowstack.Properties) {
	d.mu.Lock()
	d.inherited = p
	d.mu.Unlock()

	if p.Title != "" && d.window != nil {
		d.window.SetTitle(d.host.localize(p.Title))
	}
}

// Close closes the slot contents, then destroys the window. If the docked
// screen asked for it, the process exits once everything is closed.
func (d *Drawer) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	var contents []windowstack.Screen
	for _, t := range []windowstack.DockTarget{windowstack.DockLeft, windowstack.DockCenter, windowstack.DockRight} {
		if s, ok := d.slots[t]; ok {
			contents = append(contents, s)
		}
	}
	d.slots = make(map[windowstack.DockTarget]windowstack.Screen)
	exit := d.inherited.ExitOnClose
	handlers := make([]func(), len(d.closeHandlers))
	copy(handlers, d.closeHandlers)
	d.mu.Unlock()

	for _, s := range contents {
		closeScreen(s)
	}

	var err error
	if d.window != nil {
		d.host.mu.Lock()
		delete(d.host.drawers, d.id)
		d.host.mu.Unlock()
		err = d.window.Destroy()
		d.window = nil
	}

	for _, fn := range handlers {
		fn()
	}

	if exit {
		d.host.logger.Info("Drawer closed with exit-on-close set, exiting")
		sdl.Quit()
		os.Exit(0)
	}
	return err
}
