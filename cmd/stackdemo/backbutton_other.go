//go:build !linux

package main

import (
	"context"
	"log/slog"

	"github.com/BrandonKowalski/windowstack/pkg/windowstack/config"
)

func startBackButton(_ context.Context, cfg config.BackButtonConfig, logger *slog.Logger, _ func()) {
	logger.Warn("Back button input is only supported on Linux", "device", cfg.Device)
}
