package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/BrandonKowalski/windowstack/pkg/windowstack/config"
	"github.com/BrandonKowalski/windowstack/pkg/windowstack/input"
)

func startBackButton(ctx context.Context, cfg config.BackButtonConfig, logger *slog.Logger, onBack func()) {
	b := input.NewBackButton(input.BackButtonConfig{
		DevicePath: cfg.Device,
		Codes:      input.Codes(cfg.Codes),
		Cooldown:   cfg.Cooldown,
	}, logger, onBack)

	go func() {
		if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Back button listener stopped", "device", cfg.Device, "error", err)
		}
	}()
}
