package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/text/language"

	"github.com/BrandonKowalski/windowstack/pkg/windowstack"
	"github.com/BrandonKowalski/windowstack/pkg/windowstack/config"
	"github.com/BrandonKowalski/windowstack/pkg/windowstack/sdlhost"
)

//go:embed locales/*.toml
var locales embed.FS

const pollInterval = 16 * time.Millisecond

func newLocalizer(locale string) (*i18n.Localizer, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.ReadDir(locales, "locales")
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if _, err := bundle.LoadMessageFileFS(locales, path.Join("locales", f.Name())); err != nil {
			return nil, fmt.Errorf("load %s: %w", f.Name(), err)
		}
	}

	return i18n.NewLocalizer(bundle, locale, language.English.String()), nil
}

func newPlatform(cfg *config.Config, host *sdlhost.Host) windowstack.Platform {
	if cfg.Platform == config.PlatformStack {
		return windowstack.NewStackPlatform(host)
	}
	return windowstack.NewFlatPlatform(host)
}

func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry, logger *slog.Logger) {
	srv := &http.Server{
		Addr:    addr,
		Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}
	context.AfterFunc(ctx, func() { _ = srv.Close() })

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server stopped", "addr", addr, "error", err)
		}
	}()
}

func run(ctx context.Context, cfg *config.Config, f flags) error {
	logger := windowstack.GetLogger()
	defer windowstack.CloseLog()

	var initErr error
	sdl.Do(func() {
		initErr = sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS)
	})
	if initErr != nil {
		return fmt.Errorf("init sdl: %w", initErr)
	}
	defer sdl.Do(sdl.Quit)

	localizer, err := newLocalizer(cfg.Locale)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	if f.metricsAddr != "" {
		serveMetrics(ctx, f.metricsAddr, reg, logger)
	}

	host := sdlhost.New(
		sdlhost.WithLogger(logger),
		sdlhost.WithLocalizer(localizer),
	)

	target, _ := cfg.Target()
	ctrl := windowstack.New(windowstack.Options{
		Platform:     newPlatform(cfg, host),
		Scheduler:    windowstack.NewTickerScheduler(sdlhost.Post),
		TickInterval: cfg.Home.TickInterval,
		DockTarget:   target,
		Logger:       logger,
		Registerer:   reg,
	})

	if f.configPath != "" {
		w, err := config.Watch(f.configPath, logger, func(_, next *config.Config) {
			sdl.Do(func() {
				if t, ok := next.Target(); ok && ctrl.SetDockTarget(t) {
					logger.Info("Dock target changed", "target", t)
				}
			})
		})
		if err != nil {
			return err
		}
		defer w.Close()
	}

	bctx, stopInput := context.WithCancel(ctx)
	defer stopInput()
	if cfg.BackButton.Device != "" {
		startBackButton(bctx, cfg.BackButton, logger, func() {
			sdl.Do(func() {
				if err := ctrl.Back(); err != nil {
					logger.Warn("Back failed", "error", err)
				}
			})
		})
	}

	d := newDemo(ctrl, host, cfg, logger)
	var openErr error
	sdl.Do(func() {
		openErr = d.open()
	})
	if openErr != nil {
		return openErr
	}

	if f.homeAfter > 0 {
		timer := time.AfterFunc(f.homeAfter, func() {
			sdl.Do(d.home)
		})
		defer timer.Stop()
	}

	return loop(ctx, host, d.done)
}

// loop pumps SDL events until the context ends, done closes or SDL reports quit.
func loop(ctx context.Context, host *sdlhost.Host, done <-chan struct{}) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		running := true
		sdl.Do(func() {
			for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
				if _, ok := ev.(*sdl.QuitEvent); ok {
					running = false
					continue
				}
				host.HandleEvent(ev)
			}
		})
		if !running {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-done:
			return nil
		case <-ticker.C:
		}
	}
}
