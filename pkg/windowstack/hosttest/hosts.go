package hosttest

import (
	"sync"

	"github.com/BrandonKowalski/windowstack/pkg/windowstack"
)

// FlatHost is a fake flat host. Screens are shown and dismissed one by one.
type FlatHost struct {
	Log      *Log
	Deferred bool // Queue close notifications until Flush instead of firing them inside Dismiss

	ShowErr    error // Returned by Show
	DismissErr error // Returned by Dismiss
	DockErr    error // Returned by Dock
	MenuErr    error // Returned by RefreshMenu

	mu      sync.Mutex
	shown   []windowstack.Screen
	pending []windowstack.Screen
}

func NewFlatHost(log *Log) *FlatHost {
	return &FlatHost{Log: log}
}

func (h *FlatHost) Show(s windowstack.Screen, _ windowstack.OpenOptions) error {
	if h.ShowErr != nil {
		return h.ShowErr
	}
	h.mu.Lock()
	h.shown = append(h.shown, s)
	h.mu.Unlock()
	h.Log.add("show %s", nameOf(s))
	return nil
}

func (h *FlatHost) Dismiss(s windowstack.Screen) error {
	if h.DismissErr != nil {
		return h.DismissErr
	}

	h.mu.Lock()
	idx := -1
	for i, shown := range h.shown {
		if shown == s {
			idx = i
		}
	}
	if idx < 0 {
		h.mu.Unlock()
		return ErrNotShown
	}
	h.shown = append(h.shown[:idx], h.shown[idx+1:]...)
	if h.Deferred {
		h.pending = append(h.pending, s)
	}
	h.mu.Unlock()

	h.Log.add("dismiss %s", nameOf(s))
	if !h.Deferred {
		fireClose(s)
	}
	return nil
}

func (h *FlatHost) Dock(d windowstack.Drawer, s windowstack.Screen) error {
	if h.DockErr != nil {
		return h.DockErr
	}
	if fd, ok := d.(*Drawer); ok {
		fd.Inherited = windowstack.PropertiesOf(s)
	}
	h.Log.add("dock %s", nameOf(s))
	if fs, ok := s.(*Screen); ok {
		fs.fireOpen()
	}
	return nil
}

func (h *FlatHost) RefreshMenu(_ windowstack.Drawer, s windowstack.Screen) error {
	h.Log.add("menu %s", nameOf(s))
	return h.MenuErr
}

// Flush delivers queued close notifications in dismiss order.
func (h *FlatHost) Flush() {
	h.mu.Lock()
	pending := h.pending
	h.pending = nil
	h.mu.Unlock()

	for _, s := range pending {
		fireClose(s)
	}
}

// Pending returns how many close notifications are queued.
func (h *FlatHost) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.pending)
}

// Shown returns the names of the screens currently shown.
func (h *FlatHost) Shown() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.shown))
	for _, s := range h.shown {
		out = append(out, nameOf(s))
	}
	return out
}

// StackHost is a fake ordered-stack host.
type StackHost struct {
	Log       *Log
	StrictTop bool  // Refuse CloseChild on anything but the top
	NewErr    error // Returned by NewContainer

	mu         sync.Mutex
	containers []*Container
}

func NewStackHost(log *Log) *StackHost {
	return &StackHost{Log: log}
}

func (h *StackHost) NewContainer(root windowstack.Screen) (windowstack.Container, error) {
	if h.NewErr != nil {
		return nil, h.NewErr
	}
	c := &Container{
		Screen: NewScreen(h.Log, "nav("+nameOf(root)+")"),
		host:   h,
		root:   root,
	}
	h.mu.Lock()
	h.containers = append(h.containers, c)
	h.mu.Unlock()
	h.Log.add("new %s", c.Name)
	return c, nil
}

// Containers returns every container created so far, oldest first.
func (h *StackHost) Containers() []*Container {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*Container, len(h.containers))
	copy(out, h.containers)
	return out
}

// Last returns the most recently created container, or nil.
func (h *StackHost) Last() *Container {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.containers) == 0 {
		return nil
	}
	return h.containers[len(h.containers)-1]
}

// Container is a fake navigation window.
type Container struct {
	*Screen

	OpenErr  error // Returned by Open
	CloseErr error // Returned by Close

	host     *StackHost
	root     windowstack.Screen
	mu       sync.Mutex
	children []windowstack.Screen
	shown    bool
}

func (c *Container) Open(_ windowstack.OpenOptions) error {
	if c.OpenErr != nil {
		return c.OpenErr
	}
	c.mu.Lock()
	c.shown = true
	c.mu.Unlock()
	c.host.Log.add("open %s", c.Name)
	return nil
}

func (c *Container) OpenChild(s windowstack.Screen, _ windowstack.OpenOptions) error {
	c.mu.Lock()
	c.children = append(c.children, s)
	c.mu.Unlock()
	c.host.Log.add("push %s", nameOf(s))
	return nil
}

func (c *Container) CloseChild(s windowstack.Screen) error {
	c.mu.Lock()
	idx := -1
	for i, child := range c.children {
		if child == s {
			idx = i
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return ErrNotInContainer
	}
	if c.host.StrictTop && idx != len(c.children)-1 {
		c.mu.Unlock()
		return ErrNotTop
	}
	c.children = append(c.children[:idx], c.children[idx+1:]...)
	c.mu.Unlock()

	c.host.Log.add("pop %s", nameOf(s))
	fireClose(s)
	return nil
}

// Close closes every child top-down, then the root, then the container itself.
func (c *Container) Close() error {
	if c.CloseErr != nil {
		return c.CloseErr
	}
	c.mu.Lock()
	children := c.children
	c.children = nil
	c.shown = false
	c.mu.Unlock()

	c.host.Log.add("close %s", c.Name)
	for i := len(children) - 1; i >= 0; i-- {
		fireClose(children[i])
	}
	fireClose(c.root)
	c.FireClose()
	return nil
}

// Shown reports whether the container was opened full screen.
func (c *Container) Shown() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shown
}

// Children returns the names of the pushed screens, bottom first.
func (c *Container) Children() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.children))
	for _, s := range c.children {
		out = append(out, nameOf(s))
	}
	return out
}

// Drawer is a fake side drawer.
type Drawer struct {
	*Screen

	Win       *Screen                // Underlying window, reported through Window when set
	Inherited windowstack.Properties // Last properties copied by FlatHost.Dock

	SlotErr  error // Returned by SetSlot
	CloseErr error // Returned by Close

	mu    sync.Mutex
	slots map[windowstack.DockTarget]windowstack.Screen
}

func NewDrawer(log *Log) *Drawer {
	return &Drawer{
		Screen: NewScreen(log, "drawer"),
		slots:  make(map[windowstack.DockTarget]windowstack.Screen),
	}
}

// NewWindowedDrawer creates a drawer backed by its own window, the way a
// flat host wraps drawer contents.
func NewWindowedDrawer(log *Log) *Drawer {
	d := NewDrawer(log)
	d.Win = NewScreen(log, "drawer.window")
	return d
}

func (d *Drawer) Window() windowstack.Screen {
	if d.Win == nil {
		return nil
	}
	return d.Win
}

func (d *Drawer) SetSlot(target windowstack.DockTarget, s windowstack.Screen) error {
	if d.SlotErr != nil {
		return d.SlotErr
	}
	d.mu.Lock()
	d.slots[target] = s
	d.mu.Unlock()
	d.log.add("slot %s %s", target, nameOf(s))
	return nil
}

// Slot returns the screen in target, or nil.
func (d *Drawer) Slot(target windowstack.DockTarget) windowstack.Screen {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.slots[target]
}

// Close closes the slot contents, then the window, then the drawer.
func (d *Drawer) Close() error {
	if d.CloseErr != nil {
		return d.CloseErr
	}
	d.mu.Lock()
	var contents []windowstack.Screen
	for _, t := range []windowstack.DockTarget{windowstack.DockLeft, windowstack.DockCenter, windowstack.DockRight} {
		if s, ok := d.slots[t]; ok {
			contents = append(contents, s)
		}
	}
	d.slots = make(map[windowstack.DockTarget]windowstack.Screen)
	d.mu.Unlock()

	d.log.add("close %s", d.Name)
	for _, s := range contents {
		fireClose(s)
	}
	if d.Win != nil {
		d.Win.FireClose()
	}
	d.FireClose()
	return nil
}
