package sdlhost

import (
	"sync"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/windowstack/pkg/windowstack"
)

// Container is an ordered-stack navigation window. It shows the top of its
// stack; the window title follows the top screen. When docked into a Drawer
// it has no window of its own and retitles the drawer instead.
type Container struct {
	host   *Host
	root   windowstack.Screen
	window *sdl.Window
	id     uint32
	drawer *Drawer

	mu            sync.Mutex
	children      []windowstack.Screen
	closeHandlers []func()
	closed        bool
}

func (c *Container) OnClose(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeHandlers = append(c.closeHandlers, fn)
}

// Properties reports the current top's properties, so a drawer docking the
// container shows the right title.
func (c *Container) Properties() windowstack.Properties {
	return windowstack.PropertiesOf(c.top())
}

func (c *Container) top() windowstack.Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.children) == 0 {
		return c.root
	}
	return c.children[len(c.children)-1]
}

// Open shows the container full screen in its own window.
func (c *Container) Open(_ windowstack.OpenOptions) error {
	var opts WindowOptions
	var width, height int32
	if sc, ok := c.root.(*Screen); ok {
		opts, width, height = sc.Options, sc.Width, sc.Height
	}

	window, id, err := c.host.createWindow(c.Properties().Title, width, height, opts)
	if err != nil {
		return err
	}
	c.window = window
	c.id = id

	c.host.mu.Lock()
	c.host.containers[id] = c
	c.host.mu.Unlock()

	if sc, ok := c.root.(*Screen); ok {
		sc.fireOpen()
	}
	return nil
}

func (c *Container) OpenChild(s windowstack.Screen, _ windowstack.OpenOptions) error {
	c.mu.Lock()
	c.children = append(c.children, s)
	c.mu.Unlock()

	c.retitle()
	if sc, ok := s.(*Screen); ok {
		sc.fireOpen()
	}
	return nil
}

// CloseChild removes s. Popping the top retitles the window; a screen below
// the top is dropped without a visible change, so an instant home can clear
// the stack underneath before the final pop.
func (c *Container) CloseChild(s windowstack.Screen) error {
	c.mu.Lock()
	idx := -1
	for i := len(c.children) - 1; i >= 0; i-- {
		if c.children[i] == s {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return ErrNotInContainer
	}
	top := idx == len(c.children)-1
	c.children = append(c.children[:idx], c.children[idx+1:]...)
	c.mu.Unlock()

	if top {
		c.retitle()
	}
	closeScreen(s)
	return nil
}

// Close closes every child top-down, then the root, then the window.
func (c *Container) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	children := c.children
	c.children = nil
	handlers := make([]func(), len(c.closeHandlers))
	copy(handlers, c.closeHandlers)
	c.mu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		closeScreen(children[i])
	}
	closeScreen(c.root)

	var err error
	if c.window != nil {
		c.host.mu.Lock()
		delete(c.host.containers, c.id)
		c.host.mu.Unlock()
		err = c.window.Destroy()
		c.window = nil
	}

	for _, fn := range handlers {
		fn()
	}
	return err
}

func (c *Container) fireClose() {
	_ = c.Close()
}

func (c *Container) retitle() {
	title := c.host.localize(c.Properties().Title)
	switch {
	case c.window != nil:
		c.window.SetTitle(title)
	case c.drawer != nil && c.drawer.window != nil:
		c.drawer.window.SetTitle(title)
	}
}
