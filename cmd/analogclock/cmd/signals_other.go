//go:build !unix

package cmd

import (
	"context"

	"go.uber.org/zap"

	"github.com/go-drift/analogclock/pkg/platform"
)

// watchVisibilitySignals is a no-op where SIGUSR1/SIGUSR2 do not exist.
func watchVisibilitySignals(_ context.Context, _ *platform.LifecycleService, log *zap.Logger) func() {
	log.Debug("visibility signals unavailable on this platform")
	return func() {}
}
