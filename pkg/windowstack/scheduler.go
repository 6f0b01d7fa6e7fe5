package windowstack

import (
	"sync"
	"time"
)

// Scheduler runs fn every period until the returned cancel func is called.
// Implementations must deliver ticks on the host's event thread, or at least
// never run two ticks of the same schedule concurrently.
type Scheduler interface {
	Every(period time.Duration, fn func()) (cancel func())
}

// TickerScheduler is a Scheduler backed by time.Ticker.
type TickerScheduler struct {
	post func(func())
}

// NewTickerScheduler creates a ticker scheduler. post marshals each tick onto
// the host event thread (sdl.Do for the SDL host). A nil post runs ticks on the
// ticker goroutine, where an animated Home races any controller call made from
// the host thread; use it only when nothing else drives the controller, as in
// tests.
func NewTickerScheduler(post func(func())) *TickerScheduler {
	if post == nil {
		post = func(fn func()) { fn() }
	}
	return &TickerScheduler{post: post}
}

func (s *TickerScheduler) Every(period time.Duration, fn func()) func() {
	ticker := time.NewTicker(period)
	stop := make(chan struct{})
	var once sync.Once

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.post(fn)
			case <-stop:
				return
			}
		}
	}()

	return func() {
		once.Do(func() { close(stop) })
	}
}
