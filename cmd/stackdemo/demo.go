package main

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/windowstack/pkg/windowstack"
	"github.com/BrandonKowalski/windowstack/pkg/windowstack/config"
	"github.com/BrandonKowalski/windowstack/pkg/windowstack/sdlhost"
)

var demoScreens = []string{"title.library", "title.details", "title.settings"}

// demo opens a root plus a few screens, goes home, then destroys the root.
// All methods run on the SDL thread.
type demo struct {
	ctrl   *windowstack.Controller
	host   *sdlhost.Host
	cfg    *config.Config
	logger *slog.Logger
	drawer *sdlhost.Drawer

	done chan struct{}
	once sync.Once
}

func newDemo(ctrl *windowstack.Controller, host *sdlhost.Host, cfg *config.Config, logger *slog.Logger) *demo {
	return &demo{
		ctrl:   ctrl,
		host:   host,
		cfg:    cfg,
		logger: logger,
		done:   make(chan struct{}),
	}
}

func (d *demo) open() error {
	home := sdlhost.NewScreen("title.home")

	var opts windowstack.OpenOptions
	if !d.ctrl.Platform().NeedsRoot() {
		drawer, err := d.host.NewDrawer("title.drawer", sdlhost.WindowOptions{})
		if err != nil {
			return err
		}
		d.drawer = drawer
		home.DockedRoot = true
		opts.Dock = drawer
	}

	if err := d.ctrl.Open(home, opts); err != nil {
		return err
	}

	for _, title := range demoScreens {
		if err := d.ctrl.Open(sdlhost.NewScreen(title), windowstack.OpenOptions{Animated: true}); err != nil {
			return err
		}
	}

	d.logger.Info("Demo stack open", "platform", d.ctrl.Platform().Name(), "size", d.ctrl.Size(), "windows", d.host.Windows())
	return nil
}

func (d *demo) home() {
	t, err := d.ctrl.Home(d.cfg.HomeOptions())
	if err != nil {
		d.logger.Warn("Home failed", "error", err)
	}

	go func() {
		<-t.Done()
		if errors.Is(t.Err(), windowstack.ErrSuperseded) {
			return
		}
		sdl.Do(d.destroy)
	}()
}

func (d *demo) destroy() {
	var dock windowstack.Drawer
	if d.drawer != nil {
		dock = d.drawer
	}

	err := d.ctrl.Destroy(windowstack.DestroyOptions{Dock: dock, OnComplete: d.finish})
	if err != nil {
		d.logger.Warn("Destroy failed", "error", err)
	}
	if err != nil || d.host.Windows() == 0 {
		d.finish()
	}
}

func (d *demo) finish() {
	d.once.Do(func() {
		d.logger.Info("Demo finished")
		close(d.done)
	})
}
