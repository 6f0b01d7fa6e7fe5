package windowstack

// Screen is a presentable unit created and owned by the host.
// The controller never constructs screens, it only tracks references to them,
// so identity is interface equality and implementations must be pointer types.
type Screen interface {
	// OnClose registers fn to run once the host has closed the screen,
	// whatever caused the close (programmatic dismiss, back gesture, OS action).
	OnClose(fn func())
}

// DockedRooter is implemented by screens that stand in for the drawer's
// center slot rather than a real stacked window. Teardown stops at them.
type DockedRooter interface {
	IsDockedRoot() bool
}

// Properties are the screen attributes a flat host copies onto a drawer's
// own window when the screen is docked into it.
type Properties struct {
	Title        string // Title shown by the drawer window
	KeepScreenOn bool   // Prevent the display from sleeping while docked
	ExitOnClose  bool   // Exit the application when the drawer window closes
}

// Propertied is implemented by screens that expose inheritable Properties.
type Propertied interface {
	Properties() Properties
}

// PropertiesOf returns the inheritable properties of s, or the zero value.
func PropertiesOf(s Screen) Properties {
	if p, ok := s.(Propertied); ok {
		return p.Properties()
	}
	return Properties{}
}

func isDockedRoot(s Screen) bool {
	d, ok := s.(DockedRooter)
	return ok && d.IsDockedRoot()
}
