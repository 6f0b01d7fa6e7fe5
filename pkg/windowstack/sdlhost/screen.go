package sdlhost

import (
	"sync"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/windowstack/pkg/windowstack"
)

// Screen is a screen backed by its own SDL window on the flat host, or by a
// slot of a Container or Drawer window.
type Screen struct {
	Title        string        // Window title, or an i18n message ID when the host has a localizer
	Width        int32         // Window width (defaults to the host's)
	Height       int32         // Window height (defaults to the host's)
	Options      WindowOptions // SDL window flags
	DockedRoot   bool          // Marks the drawer-center stand-in that teardown stops at
	KeepScreenOn bool          // Disable the screen saver while docked
	ExitOnClose  bool          // Exit when the hosting drawer closes

	window *sdl.Window

	mu            sync.Mutex
	closeHandlers []func()
	openHandlers  []func()
	closed        bool
}

// NewScreen creates a screen with the given title.
func NewScreen(title string) *Screen {
	return &Screen{Title: title}
}

func (s *Screen) OnClose(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeHandlers = append(s.closeHandlers, fn)
}

// OnOpen registers fn to run when the screen is shown or docked.
func (s *Screen) OnOpen(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openHandlers = append(s.openHandlers, fn)
}

func (s *Screen) IsDockedRoot() bool {
	return s.DockedRoot
}

func (s *Screen) Properties() windowstack.Properties {
	return windowstack.Properties{
		Title:        s.Title,
		KeepScreenOn: s.KeepScreenOn,
		ExitOnClose:  s.ExitOnClose,
	}
}

// Window returns the SDL window while the screen is shown on the flat host.
func (s *Screen) Window() *sdl.Window {
	return s.window
}

func (s *Screen) fireOpen() {
	s.mu.Lock()
	handlers := make([]func(), len(s.openHandlers))
	copy(handlers, s.openHandlers)
	s.mu.Unlock()

	for _, fn := range handlers {
		fn()
	}
}

func (s *Screen) fireClose() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	handlers := make([]func(), len(s.closeHandlers))
	copy(handlers, s.closeHandlers)
	s.mu.Unlock()

	for _, fn := range handlers {
		fn()
	}
}

// closer is implemented by everything this host can close.
type closer interface {
	fireClose()
}

func closeScreen(s windowstack.Screen) {
	switch v := s.(type) {
	case *Container:
		_ = v.Close()
	case closer:
		v.fireClose()
	}
}
