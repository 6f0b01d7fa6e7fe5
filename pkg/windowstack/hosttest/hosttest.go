// Package hosttest provides in-memory hosts, screens, drawers and a manual
// scheduler for exercising windowstack without a real UI.
//
// Every fake writes what it does to a shared Log, so a test can assert on the
// exact order of host calls and close notifications:
//
//	log := hosttest.NewLog()
//	host := hosttest.NewStackHost(log)
//	c := windowstack.New(windowstack.Options{Platform: windowstack.NewStackPlatform(host)})
//	...
//	assert.Equal(t, []string{"closed A", "closed B"}, log.Filter("closed"))
package hosttest

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/BrandonKowalski/windowstack/pkg/windowstack"
)

var (
	ErrNotShown       = errors.New("hosttest: screen is not shown")
	ErrNotInContainer = errors.New("hosttest: screen is not in the container")
	ErrNotTop         = errors.New("hosttest: only the top screen can be closed")
)

// Log records host events in order.
type Log struct {
	mu     sync.Mutex
	events []string
}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) add(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, fmt.Sprintf(format, args...))
}

// Events returns every recorded event.
func (l *Log) Events() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.events))
	copy(out, l.events)
	return out
}

// Filter returns the events starting with verb, with the verb stripped.
// Filter("closed") on ["show A", "closed A"] gives ["A"].
func (l *Log) Filter(verb string) []string {
	var out []string
	for _, e := range l.Events() {
		if rest, ok := strings.CutPrefix(e, verb+" "); ok {
			out = append(out, rest)
		}
	}
	return out
}

func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = nil
}

// Screen is a fake screen. Its close notification fires at most once.
type Screen struct {
	Name       string
	DockedRoot bool                   // Tag as the drawer-center marker
	Props      windowstack.Properties // Properties copied onto a drawer by FlatHost.Dock

	log      *Log
	mu       sync.Mutex
	handlers []func()
	closed   bool
	opened   int
}

func NewScreen(log *Log, name string) *Screen {
	return &Screen{Name: name, log: log}
}

// NewDockedRoot creates a screen tagged as the drawer-center marker.
func NewDockedRoot(log *Log, name string) *Screen {
	return &Screen{Name: name, DockedRoot: true, log: log}
}

func (s *Screen) String() string {
	return s.Name
}

func (s *Screen) OnClose(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, fn)
}

func (s *Screen) IsDockedRoot() bool {
	return s.DockedRoot
}

func (s *Screen) Properties() windowstack.Properties {
	return s.Props
}

// Subscriptions returns how many close handlers are registered.
func (s *Screen) Subscriptions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handlers)
}

func (s *Screen) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Opened returns how many times the host fired the screen's open event.
func (s *Screen) Opened() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opened
}

// FireClose delivers the close notification, as the host would after a
// dismiss, a back gesture or an OS action. Later calls do nothing.
func (s *Screen) FireClose() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	handlers := make([]func(), len(s.handlers))
	copy(handlers, s.handlers)
	s.mu.Unlock()

	if s.log != nil {
		s.log.add("closed %s", s.Name)
	}
	for _, fn := range handlers {
		fn()
	}
}

func (s *Screen) fireOpen() {
	s.mu.Lock()
	s.opened++
	s.mu.Unlock()
	if s.log != nil {
		s.log.add("opened %s", s.Name)
	}
}

func nameOf(s windowstack.Screen) string {
	if n, ok := s.(fmt.Stringer); ok {
		return n.String()
	}
	return fmt.Sprintf("%p", s)
}

func fireClose(s windowstack.Screen) {
	if c, ok := s.(interface{ FireClose() }); ok {
		c.FireClose()
	}
}
