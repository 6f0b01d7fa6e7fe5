package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/windowstack/pkg/windowstack"
	"github.com/BrandonKowalski/windowstack/pkg/windowstack/config"
)

type flags struct {
	configPath  string
	platform    string
	logLevel    string
	homeAfter   time.Duration
	instant     bool
	metricsAddr string
}

func newRootCommand() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:           "stackdemo",
		Short:         "Open and tear down a stack of SDL windows",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, f)
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "path to a TOML config file (watched for changes)")
	cmd.Flags().StringVar(&f.platform, "platform", "", "host model: stack or flat (overrides the config file)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides the config file)")
	cmd.Flags().DurationVar(&f.homeAfter, "home-after", 3*time.Second, "go home this long after the demo stack is open (0 waits for the back button)")
	cmd.Flags().BoolVar(&f.instant, "instant", false, "close everything in one pass when going home")
	cmd.Flags().StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")

	return cmd
}

func loadConfig(cmd *cobra.Command, f flags) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("platform") {
		cfg.Platform = f.platform
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if cmd.Flags().Changed("instant") {
		cfg.Home.Instant = f.instant
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.LogPath != "" {
		windowstack.SetLogPath(cfg.LogPath)
	}
	windowstack.SetRawLogLevel(cfg.LogLevel)
	if cfg.LogLevel == "debug" {
		windowstack.SetInternalLogLevel(slog.LevelDebug)
	}

	if _, ok := cfg.Target(); !ok {
		return nil, fmt.Errorf("unknown dock_target %q", cfg.DockTarget)
	}
	return cfg, nil
}
