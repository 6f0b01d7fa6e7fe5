package windowstack

import (
	"fmt"
	"strings"
)

// DockTarget selects the drawer slot a root presentation is placed into.
// The zero value means "use the controller's configured target".
type DockTarget int

const (
	DockCenter DockTarget = 101 // Main content slot (default)
	DockRight  DockTarget = 102 // Right-hand side panel
	DockLeft   DockTarget = 103 // Left-hand side panel
)

// Valid reports whether t is one of the three drawer slots.
func (t DockTarget) Valid() bool {
	switch t {
	case DockCenter, DockRight, DockLeft:
		return true
	}
	return false
}

func (t DockTarget) String() string {
	switch t {
	case DockCenter:
		return "center"
	case DockRight:
		return "right"
	case DockLeft:
		return "left"
	default:
		return fmt.Sprintf("DockTarget(%d)", int(t))
	}
}

// ParseDockTarget parses "center", "left" or "right" (case-insensitive).
func ParseDockTarget(s string) (DockTarget, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "center", "centre":
		return DockCenter, nil
	case "right":
		return DockRight, nil
	case "left":
		return DockLeft, nil
	}
	return 0, fmt.Errorf("windowstack: unknown dock target %q", s)
}

// Drawer is a side-drawer container able to host one screen per slot.
// Its own open/close and docking animation belong to the host.
type Drawer interface {
	SetSlot(target DockTarget, s Screen) error
	Close() error
	OnClose(fn func())
}

// DrawerWindower is implemented by drawers backed by a separate window whose
// close notification fires instead of (or before) the drawer's own.
type DrawerWindower interface {
	Window() Screen
}
