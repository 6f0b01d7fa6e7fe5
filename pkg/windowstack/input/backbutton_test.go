//go:build linux

package input

import (
	"context"
	"testing"
	"time"

	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"
)

func press(code evdev.EvCode) *evdev.InputEvent {
	return &evdev.InputEvent{Type: evdev.EV_KEY, Code: code, Value: 1}
}

func TestHandleBackPress(t *testing.T) {
	calls := 0
	b := NewBackButton(BackButtonConfig{}, nil, func() { calls++ })

	assert.True(t, b.Handle(press(evdev.KEY_BACK), time.Now()))
	assert.Equal(t, 1, calls)
}

func TestHandleIgnoresOtherEvents(t *testing.T) {
	calls := 0
	b := NewBackButton(BackButtonConfig{Codes: []evdev.EvCode{evdev.KEY_BACK}}, nil, func() { calls++ })
	now := time.Now()

	assert.False(t, b.Handle(nil, now))
	assert.False(t, b.Handle(press(evdev.KEY_ESC), now))
	assert.False(t, b.Handle(&evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.KEY_BACK, Value: 0}, now), "release")
	assert.False(t, b.Handle(&evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.KEY_BACK, Value: 2}, now), "autorepeat")
	assert.False(t, b.Handle(&evdev.InputEvent{Type: evdev.EV_SYN}, now))
	assert.Equal(t, 0, calls)
}

func TestHandleCooldown(t *testing.T) {
	calls := 0
	b := NewBackButton(BackButtonConfig{Cooldown: 200 * time.Millisecond}, nil, func() { calls++ })
	start := time.Now()

	assert.True(t, b.Handle(press(evdev.KEY_BACK), start))
	assert.False(t, b.Handle(press(evdev.KEY_BACK), start.Add(50*time.Millisecond)))
	assert.True(t, b.Handle(press(evdev.KEY_ESC), start.Add(250*time.Millisecond)))
	assert.Equal(t, 2, calls)
}

func TestCodes(t *testing.T) {
	assert.Equal(t, []evdev.EvCode{evdev.KEY_BACK, evdev.KEY_ESC}, Codes([]uint16{158, 1}))
}

func TestRunMissingDevice(t *testing.T) {
	b := NewBackButton(BackButtonConfig{DevicePath: "/nonexistent/event99"}, nil, func() {})
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	assert.Error(t, b.Run(ctx))
}
