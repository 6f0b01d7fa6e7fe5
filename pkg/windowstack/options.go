package windowstack

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultTickInterval is the spacing between closes of an animated Home.
const DefaultTickInterval = 100 * time.Millisecond

// Options configures a Controller.
type Options struct {
	Platform     Platform              // Host navigation model, selected once (required)
	Scheduler    Scheduler             // Periodic tick source for animated Home (defaults to NewTickerScheduler(nil); pass one that posts to the host thread)
	TickInterval time.Duration         // Period of the animated Home tick (defaults to DefaultTickInterval)
	DockTarget   DockTarget            // Initial drawer slot for docked opens (defaults to DockCenter)
	Logger       *slog.Logger          // Logger for controller events (defaults to the package internal logger)
	Registerer   prometheus.Registerer // Where to register metrics (nil leaves them unregistered)
}

// OpenOptions configures a single Open call.
type OpenOptions struct {
	Dock     Drawer         // Present the screen as the root of this drawer instead of full screen
	Target   DockTarget     // Drawer slot for this open only (zero uses the controller's target)
	Animated bool           // Ask the host to animate the presentation
	Params   map[string]any // Host-specific display properties, passed through verbatim
}

// HomeOptions configures Home. The zero value is an animated teardown.
type HomeOptions struct {
	Instant bool // Close everything in one pass instead of one screen per tick
}

// DestroyOptions configures Destroy.
type DestroyOptions struct {
	Dock       Drawer // Active drawer to close instead of the root container
	OnComplete func() // Called once the top-level close notification fires
}
