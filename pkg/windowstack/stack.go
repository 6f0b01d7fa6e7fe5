package windowstack

// StackEntry represents a single pushed screen in the logical stack.
// DockedRoot is captured when the screen is pushed.
type StackEntry struct {
	Screen     Screen
	DockedRoot bool
}

// stack holds the pushed screens in insertion order.
// The last entry is always the current one.
type stack struct {
	entries []StackEntry
}

func newStack() *stack {
	return &stack{
		entries: make([]StackEntry, 0),
	}
}

func (s *stack) push(screen Screen) {
	s.entries = append(s.entries, StackEntry{
		Screen:     screen,
		DockedRoot: isDockedRoot(screen),
	})
}

// remove drops the top-most entry for screen.
// Returns false if the screen is not tracked, which makes close handlers idempotent.
func (s *stack) remove(screen Screen) bool {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Screen == screen {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (s *stack) contains(screen Screen) bool {
	for _, e := range s.entries {
		if e.Screen == screen {
			return true
		}
	}
	return false
}

func (s *stack) peek() (StackEntry, bool) {
	if len(s.entries) == 0 {
		return StackEntry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

func (s *stack) at(i int) (StackEntry, bool) {
	if i < 0 || i >= len(s.entries) {
		return StackEntry{}, false
	}
	return s.entries[i], true
}

func (s *stack) snapshot() []StackEntry {
	out := make([]StackEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *stack) len() int {
	return len(s.entries)
}

func (s *stack) clear() {
	s.entries = s.entries[:0]
}
