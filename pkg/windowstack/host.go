package windowstack

// StackHost is a host with a native ordered-stack container
// (push/pop screens onto a navigation window).
type StackHost interface {
	// NewContainer creates a container whose bottom screen is root.
	// The container is not shown until Open is called or it is docked.
	NewContainer(root Screen) (Container, error)
}

// Container is the ordered-stack host primitive. It is itself a Screen:
// its close notification fires once the container and everything it holds is gone.
type Container interface {
	Screen
	Open(opts OpenOptions) error
	OpenChild(s Screen, opts OpenOptions) error
	// CloseChild pops s. Only the current top is guaranteed to work;
	// closing anything else is host-defined.
	CloseChild(s Screen) error
	Close() error
}

// FlatHost is a host where every screen is shown and dismissed on its own,
// with no built-in ordering.
type FlatHost interface {
	Show(s Screen, opts OpenOptions) error
	Dismiss(s Screen) error
	// Dock prepares d's window to host s: copies s's Properties onto it and
	// fires s's open notification, since a docked screen is never shown directly.
	Dock(d Drawer, s Screen) error
	// RefreshMenu rebuilds d's menu for s. Failures are not fatal.
	RefreshMenu(d Drawer, s Screen) error
}
