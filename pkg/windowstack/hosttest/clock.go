package hosttest

import (
	"sync"
	"time"
)

// Clock is a manual windowstack.Scheduler. Nothing runs until Tick is called.
type Clock struct {
	mu    sync.Mutex
	tasks []*task
}

type task struct {
	period    time.Duration
	fn        func()
	cancelled bool
}

func NewClock() *Clock {
	return &Clock{}
}

func (c *Clock) Every(period time.Duration, fn func()) func() {
	t := &task{period: period, fn: fn}
	c.mu.Lock()
	c.tasks = append(c.tasks, t)
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		t.cancelled = true
		c.mu.Unlock()
	}
}

// Tick fires every active schedule once.
func (c *Clock) Tick() {
	c.mu.Lock()
	var due []func()
	for _, t := range c.tasks {
		if !t.cancelled {
			due = append(due, t.fn)
		}
	}
	c.mu.Unlock()

	for _, fn := range due {
		fn()
	}
}

// TickN calls Tick n times.
func (c *Clock) TickN(n int) {
	for i := 0; i < n; i++ {
		c.Tick()
	}
}

// Active returns how many schedules have not been cancelled.
func (c *Clock) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Periods returns the period of every schedule ever started, in order.
func (c *Clock) Periods() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, 0, len(c.tasks))
	for _, t := range c.tasks {
		out = append(out, t.period)
	}
	return out
}
