package windowstack

import (
	"errors"
	"fmt"
)

// Sentinel errors for precondition violations and teardown outcomes.
var (
	// ErrNoContainer indicates a push or dismiss on the ordered-stack platform
	// before any root container was presented.
	ErrNoContainer = errors.New("windowstack: no root container")

	// ErrAlreadyOpen indicates the screen is already tracked by the stack.
	ErrAlreadyOpen = errors.New("windowstack: screen already open")

	// ErrNoDock indicates a root presentation on the flat platform without a drawer.
	ErrNoDock = errors.New("windowstack: flat platform needs a drawer for root presentation")

	// ErrSuperseded is reported by a Teardown cancelled by a later Home or Destroy.
	ErrSuperseded = errors.New("windowstack: teardown superseded")

	// ErrStopped is reported by a Teardown stopped by its owner.
	ErrStopped = errors.New("windowstack: teardown stopped")
)

// HostError wraps a failure surfaced by the host platform or drawer.
// The controller never masks these; callers can still reach the host's
// own error through errors.Is and errors.As.
type HostError struct {
	Op  string // Operation that failed (e.g., "present_child", "dismiss")
	Err error  // Underlying host error
}

func (e *HostError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("windowstack: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("windowstack: %s", e.Op)
}

func (e *HostError) Unwrap() error {
	return e.Err
}

// NewHostError creates a new host error. Returns nil if err is nil.
func NewHostError(op string, err error) error {
	if err == nil {
		return nil
	}
	var he *HostError
	if errors.As(err, &he) {
		return err
	}
	return &HostError{Op: op, Err: err}
}

// IsHostError checks if an error came from the host.
func IsHostError(err error) bool {
	var hostErr *HostError
	return errors.As(err, &hostErr)
}
