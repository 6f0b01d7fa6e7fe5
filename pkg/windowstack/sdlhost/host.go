// Package sdlhost runs windowstack on SDL2.
//
// Host implements both host models: as a FlatHost every screen gets its own
// SDL window; as a StackHost one window per Container shows the top of an
// in-window screen stack. Drawers are SDL windows with three slots.
//
// SDL must be driven from one thread. Every Host method, and HandleEvent,
// has to run on the thread that called sdl.Init; Post moves work there.
package sdlhost

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/windowstack/pkg/windowstack"
)

var (
	ErrForeignScreen  = errors.New("sdlhost: screen was not created by sdlhost")
	ErrNotShown       = errors.New("sdlhost: screen is not shown")
	ErrNotInContainer = errors.New("sdlhost: screen is not in the container")
	ErrNotAttached    = errors.New("sdlhost: drawer window is not attached")
)

const (
	defaultWidth  int32 = 1024
	defaultHeight int32 = 768
)

// Host creates and tracks SDL windows for screens, containers and drawers.
type Host struct {
	logger    *slog.Logger
	localizer *i18n.Localizer
	width     int32
	height    int32

	mu         sync.Mutex
	screens    map[uint32]*Screen
	containers map[uint32]*Container
	drawers    map[uint32]*Drawer
}

// Option configures a Host.
type Option func(*Host)

// WithLocalizer resolves screen titles as i18n message IDs.
func WithLocalizer(l *i18n.Localizer) Option {
	return func(h *Host) { h.localizer = l }
}

// WithLogger sets the host logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Host) { h.logger = l }
}

// WithSize sets the default window size.
func WithSize(width, height int32) Option {
	return func(h *Host) {
		h.width = width
		h.height = height
	}
}

// New creates a host. sdl.Init(sdl.INIT_VIDEO) must have been called.
func New(opts ...Option) *Host {
	h := &Host{
		logger:     slog.Default(),
		width:      defaultWidth,
		height:     defaultHeight,
		screens:    make(map[uint32]*Screen),
		containers: make(map[uint32]*Container),
		drawers:    make(map[uint32]*Drawer),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Post runs fn on the SDL thread. Pass it to windowstack.NewTickerScheduler.
func Post(fn func()) {
	sdl.Do(fn)
}

func (h *Host) localize(title string) string {
	if h.localizer == nil || title == "" {
		return title
	}
	msg, err := h.localizer.Localize(&i18n.LocalizeConfig{MessageID: title})
	if err != nil {
		return title
	}
	return msg
}

func (h *Host) createWindow(title string, width, height int32, opts WindowOptions) (*sdl.Window, uint32, error) {
	if width <= 0 {
		width = h.width
	}
	if height <= 0 {
		height = h.height
	}

	window, err := sdl.CreateWindow(h.localize(title), sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, width, height, opts.ToSDLFlags())
	if err != nil {
		return nil, 0, err
	}

	id, err := window.GetID()
	if err != nil {
		window.Destroy()
		return nil, 0, err
	}

	h.logger.Debug("Created SDL window", "title", title, "id", id, "width", width, "height", height)
	return window, id, nil
}

func screenOf(s windowstack.Screen) (*Screen, error) {
	sc, ok := s.(*Screen)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrForeignScreen, s)
	}
	return sc, nil
}

// Show opens s in its own window.
func (h *Host) Show(s windowstack.Screen, _ windowstack.OpenOptions) error {
	sc, err := screenOf(s)
	if err != nil {
		return err
	}

	window, id, err := h.createWindow(sc.Title, sc.Width, sc.Height, sc.Options)
	if err != nil {
		return err
	}
	sc.window = window

	h.mu.Lock()
	h.screens[id] = sc
	h.mu.Unlock()

	sc.fireOpen()
	return nil
}

// Dismiss destroys s's window and fires its close notification.
func (h *Host) Dismiss(s windowstack.Screen) error {
	sc, err := screenOf(s)
	if err != nil {
		return err
	}
	if sc.window == nil {
		return ErrNotShown
	}

	window := sc.window
	sc.window = nil

	if id, err := window.GetID(); err == nil {
		h.mu.Lock()
		delete(h.screens, id)
		h.mu.Unlock()
	}

	if err := window.Destroy(); err != nil {
		h.logger.Warn("Failed to destroy SDL window", "title", sc.Title, "error", err)
	}

	sc.fireClose()
	return nil
}

// Dock copies s's properties onto the drawer window and fires s's open
// notification, since a docked screen never gets a window of its own.
func (h *Host) Dock(d windowstack.Drawer, s windowstack.Screen) error {
	dr, ok := d.(*Drawer)
	if !ok {
		return fmt.Errorf("%w: %T", ErrForeignScreen, d)
	}

	props := windowstack.PropertiesOf(s)
	dr.inherit(props)

	if props.KeepScreenOn {
		sdl.DisableScreenSaver()
	}

	if sc, ok := s.(*Screen); ok {
		sc.fireOpen()
	}
	return nil
}

// RefreshMenu makes s the owner of the drawer's menu. It fails while the
// drawer has no window yet.
func (h *Host) RefreshMenu(d windowstack.Drawer, s windowstack.Screen) error {
	dr, ok := d.(*Drawer)
	if !ok {
		return fmt.Errorf("%w: %T", ErrForeignScreen, d)
	}
	if dr.window == nil {
		return ErrNotAttached
	}
	dr.menuOwner = s
	return nil
}

// NewContainer creates a container rooted at root. Its window is created by Open.
func (h *Host) NewContainer(root windowstack.Screen) (windowstack.Container, error) {
	return &Container{host: h, root: root}, nil
}

// HandleEvent routes window-close requests from the OS to the matching
// screen, container or drawer. It returns true if the event was consumed.
func (h *Host) HandleEvent(ev sdl.Event) bool {
	we, ok := ev.(*sdl.WindowEvent)
	if !ok || we.Event != sdl.WINDOWEVENT_CLOSE {
		return false
	}

	h.mu.Lock()
	sc := h.screens[we.WindowID]
	c := h.containers[we.WindowID]
	d := h.drawers[we.WindowID]
	h.mu.Unlock()

	var err error
	switch {
	case sc != nil:
		err = h.Dismiss(sc)
	case c != nil:
		err = c.Close()
	case d != nil:
		err = d.Close()
	default:
		return false
	}

	if err != nil {
		h.logger.Warn("Failed to close window on request", "id", we.WindowID, "error", err)
	}
	return true
}

// Windows returns how many SDL windows the host currently owns.
func (h *Host) Windows() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.screens) + len(h.containers) + len(h.drawers)
}
