package cmd

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/go-drift/analogclock/cmd/analogclock/internal/config"
	"github.com/go-drift/analogclock/pkg/animation"
	"github.com/go-drift/analogclock/pkg/errors"
	"github.com/go-drift/analogclock/pkg/logger"
)

// loadConfig resolves the config files and applies command line overrides.
func loadConfig(opts commonOptions) (*config.Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadOptional(dir, opts.configFiles)
	if err != nil {
		return nil, err
	}

	if opts.out != "" {
		cfg.Output.Path = opts.out
		if opts.format == "" {
			cfg.Output.Format = config.FormatFromPath(opts.out)
		}
	}
	if opts.format != "" {
		cfg.Output.Format = opts.format
	}
	if opts.debugAddr != "" {
		cfg.Engine.DebugAddr = opts.debugAddr
	}
	if opts.fps > 0 {
		cfg.Engine.FPS = opts.fps
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging builds the logger, installs it globally and routes clock
// errors to it. The returned func restores the previous globals.
func setupLogging(cfg *config.Config) (*zap.Logger, func(), error) {
	log, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	undo := zap.ReplaceGlobals(log)
	prevHandler := errors.SetHandler(&errors.LogHandler{Logger: log})
	return log, func() {
		errors.SetHandler(prevHandler)
		undo()
		_ = log.Sync()
	}, nil
}

// newTimeSource returns the configured clock. NTP clocks are synced once
// before returning and keep syncing until ctx ends or Stop is called.
func newTimeSource(ctx context.Context, cfg *config.Config, log *zap.Logger) (animation.Clock, func(), error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}
	ntpCfg := cfg.Clock.NTP
	if ntpCfg.Server == "" {
		return animation.SystemClock{Location: loc}, func() {}, nil
	}

	ntp := animation.NewNTPClock(
		animation.WithNTPServer(ntpCfg.Server),
		animation.WithNTPInterval(ntpCfg.Interval),
		animation.WithNTPTimeout(ntpCfg.Timeout),
		animation.WithNTPLocation(loc),
		animation.WithNTPLogger(log.Named("ntp")),
	)
	ntp.Start(ctx)
	return ntp, ntp.Stop, nil
}
