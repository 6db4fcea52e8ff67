//go:build unix

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/go-drift/analogclock/pkg/platform"
)

// watchVisibilitySignals maps SIGUSR1 to paused and SIGUSR2 to resumed.
func watchVisibilitySignals(ctx context.Context, lifecycle *platform.LifecycleService, log *zap.Logger) func() {
	ctx, cancel := context.WithCancel(ctx)
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGUSR1, syscall.SIGUSR2)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-ch:
				state := platform.LifecycleStateResumed
				if sig == syscall.SIGUSR1 {
					state = platform.LifecycleStatePaused
				}
				log.Info("lifecycle signal", zap.Stringer("signal", sig), zap.String("state", string(state)))
				lifecycle.SetState(state)
			}
		}
	}()

	return func() {
		cancel()
		signal.Stop(ch)
		<-done
	}
}
