//go:build linux

// Package input turns hardware back-button presses into Controller.Back calls.
package input

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/holoplot/go-evdev"
	"go.uber.org/atomic"
)

// DefaultCodes are the key codes treated as back when none are configured.
var DefaultCodes = []evdev.EvCode{evdev.KEY_BACK, evdev.KEY_ESC}

// BackButtonConfig configures a BackButton.
type BackButtonConfig struct {
	DevicePath string         // Event device to read (e.g. /dev/input/event1)
	Codes      []evdev.EvCode // Key codes that mean back (defaults to DefaultCodes)
	Cooldown   time.Duration  // Presses closer together than this are dropped
}

// BackButton reads key presses from an event device and calls OnBack for each
// press of a back key. The close notification that follows is what updates
// the stack, exactly as for any other close origin.
type BackButton struct {
	cfg    BackButtonConfig
	onBack func()
	logger *slog.Logger

	lastPress *atomic.Int64
}

// NewBackButton creates a listener. onBack usually posts Controller.Back onto
// the UI thread.
func NewBackButton(cfg BackButtonConfig, logger *slog.Logger, onBack func()) *BackButton {
	if len(cfg.Codes) == 0 {
		cfg.Codes = DefaultCodes
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BackButton{
		cfg:       cfg,
		onBack:    onBack,
		logger:    logger,
		lastPress: atomic.NewInt64(0),
	}
}

// Codes converts raw key codes from configuration.
func Codes(raw []uint16) []evdev.EvCode {
	out := make([]evdev.EvCode, 0, len(raw))
	for _, c := range raw {
		out = append(out, evdev.EvCode(c))
	}
	return out
}

// Run reads the device until ctx is cancelled or the device fails.
func (b *BackButton) Run(ctx context.Context) error {
	dev, err := evdev.Open(b.cfg.DevicePath)
	if err != nil {
		return fmt.Errorf("input: open %s: %w", b.cfg.DevicePath, err)
	}

	// ReadOne blocks; closing the device is the only way to wake it.
	stop := context.AfterFunc(ctx, func() { dev.Close() })
	defer func() {
		if stop() {
			dev.Close()
		}
	}()

	name, _ := dev.Name()
	b.logger.Debug("Listening for back button", "device", b.cfg.DevicePath, "name", name)

	for {
		ev, err := dev.ReadOne()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, os.ErrClosed) {
				return ctx.Err()
			}
			return fmt.Errorf("input: read %s: %w", b.cfg.DevicePath, err)
		}
		b.Handle(ev, time.Now())
	}
}

// Handle processes one event. It returns true if OnBack was called.
func (b *BackButton) Handle(ev *evdev.InputEvent, now time.Time) bool {
	if ev == nil || ev.Type != evdev.EV_KEY || ev.Value != 1 {
		return false
	}
	if !b.isBack(ev.Code) {
		return false
	}

	last := b.lastPress.Load()
	if last != 0 && now.Sub(time.Unix(0, last)) < b.cfg.Cooldown {
		b.logger.Debug("Back press within cooldown, dropped", "code", ev.Code)
		return false
	}
	if !b.lastPress.CompareAndSwap(last, now.UnixNano()) {
		return false
	}

	b.onBack()
	return true
}

func (b *BackButton) isBack(code evdev.EvCode) bool {
	for _, c := range b.cfg.Codes {
		if c == code {
			return true
		}
	}
	return false
}
