package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/go-drift/analogclock/cmd/analogclock/internal/config"
	"github.com/go-drift/analogclock/cmd/analogclock/internal/sink"
	"github.com/go-drift/analogclock/pkg/clock"
	"github.com/go-drift/analogclock/pkg/engine"
	"github.com/go-drift/analogclock/pkg/face"
	"github.com/go-drift/analogclock/pkg/platform"
	"github.com/go-drift/analogclock/pkg/rendering"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Animate the clock and keep the output file current",
		Long: `Run the clock until interrupted, rewriting the output image as the hands move.

Configuration is read from analogclock.yaml in the current directory, or from
the files given with --config (later files override earlier ones).

Flags:
  --config PATH   Config file to load (repeatable)
  --out PATH      Output image path (overrides output.path)
  --format FMT    png or svg (defaults to the --out extension)
  --fps N         Display refresh rate
  --debug-addr A  Serve /health, /frames, /runtime, /tree and /snapshot.svg on A
  --state STATE   Initial lifecycle state: resumed, inactive, paused or detached

Signals:
  SIGUSR1         Hide the clock (the frame loop pauses)
  SIGUSR2         Show the clock again
  SIGINT/SIGTERM  Write the last frame and exit`,
		Usage: "analogclock run [--config PATH]... [--out PATH] [--format png|svg] [--fps N] [--debug-addr ADDR] [--state STATE]",
		Run:   runRun,
	})
}

type runOptions struct {
	commonOptions
	// state is the lifecycle state to start in. Empty keeps the default.
	state platform.LifecycleState
}

func parseRunArgs(args []string) (runOptions, error) {
	var opts runOptions
	for i := 0; i < len(args); i++ {
		next, ok, err := parseCommonFlag(args, i, &opts.commonOptions)
		if err != nil {
			return opts, err
		}
		if ok {
			i = next
			continue
		}

		var value string
		switch {
		case args[i] == "--state":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("--state requires a value")
			}
			i++
			value = args[i]
		case strings.HasPrefix(args[i], "--state="):
			value = strings.TrimPrefix(args[i], "--state=")
		default:
			return opts, fmt.Errorf("unknown argument %q\n\nUsage: analogclock run [--config PATH]... [--out PATH] [--state STATE]", args[i])
		}
		if opts.state, err = platform.ParseLifecycleState(value); err != nil {
			return opts, fmt.Errorf("--state: %w", err)
		}
	}
	return opts, nil
}

func runRun(args []string) error {
	opts, err := parseRunArgs(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(opts.commonOptions)
	if err != nil {
		return err
	}
	log, cleanup, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.state != "" {
		platform.Lifecycle.SetState(opts.state)
	}
	return runClock(ctx, cfg, log, platform.Lifecycle)
}

// runClock animates the configured face until ctx ends. Visibility follows
// lifecycle; runClock subscribes the clock to it and feeds it from signals.
func runClock(ctx context.Context, cfg *config.Config, log *zap.Logger, lifecycle *platform.LifecycleService) error {
	clk, stopClock, err := newTimeSource(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer stopClock()

	th, err := cfg.Theme()
	if err != nil {
		return err
	}
	format, err := sink.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	size := rendering.Size{Width: cfg.Face.Width, Height: cfg.Face.Height}
	doc := face.Build(size, th)
	out := sink.New(doc, sink.Options{
		Path:               cfg.Output.Path,
		Format:             format,
		MaxWritesPerSecond: cfg.Output.MaxWritesPerSecond,
		Logger:             log.Named("sink"),
	})
	eng := engine.New(engine.Config{
		FPS:       cfg.Engine.FPS,
		Clock:     clk,
		Presenter: out,
		Logger:    log.Named("engine"),
	})
	analog := clock.New(doc, eng.Scheduler(), lifecycle, clk,
		clock.WithDispatcher(eng.Dispatch),
		clock.WithTickStyle(face.TickStyle(size, th)),
		clock.WithLogger(log.Named("clock")),
	)
	eng.Dispatch(func() {
		analog.Mount()
		eng.Present()
	})

	log.Info("analog clock started",
		zap.String("output", cfg.Output.Path),
		zap.String("state", string(lifecycle.State())),
		zap.Bool("resumed", lifecycle.IsResumed()),
	)

	stopSignals := watchVisibilitySignals(ctx, lifecycle, log)
	defer stopSignals()
	if cfg.Engine.DebugAddr != "" {
		closeDebug, err := startDebugServer(ctx, cfg.Engine.DebugAddr, eng, doc, analog, lifecycle, log)
		if err != nil {
			return err
		}
		defer closeDebug()
	}
	if cfg.Engine.StatsInterval > 0 {
		go reportFrameStats(ctx, eng, cfg.Engine.StatsInterval, log)
	}

	log.Info("analog clock running",
		zap.String("output", cfg.Output.Path),
		zap.Int("fps", cfg.Engine.FPS),
		zap.String("location", cfg.Clock.Location),
	)
	if err := eng.Run(ctx); err != nil {
		return err
	}

	// The loop has stopped, so the clock can be torn down from here.
	analog.Unmount()
	if err := out.Flush(); err != nil {
		return err
	}
	lat := out.WriteLatency()
	log.Info("analog clock stopped",
		zap.Uint64("frames", eng.Frames()),
		zap.Uint64("written", out.Written()),
		zap.Uint64("skipped", out.Skipped()),
		zap.Duration("write_p50", lat.P50),
		zap.Duration("write_p95", lat.P95),
	)
	return nil
}

// sceneInfo is the /tree payload.
type sceneInfo struct {
	State        string                `json:"state"`
	Lifecycle    string                `json:"lifecycle"`
	Resumed      bool                  `json:"resumed"`
	FramePending bool                  `json:"framePending"`
	Ticks        string                `json:"ticks"`
	Angles       clock.Angles          `json:"angles"`
	Tree         rendering.ElementNode `json:"tree"`
}

// inspectScene describes the running clock. It runs on the loop goroutine.
func inspectScene(eng *engine.Engine, doc *rendering.Document, analog *clock.AnalogClock, lifecycle *platform.LifecycleService) sceneInfo {
	return sceneInfo{
		State:        analog.State().String(),
		Lifecycle:    string(lifecycle.State()),
		Resumed:      lifecycle.IsResumed(),
		FramePending: eng.Scheduler().HasPending(),
		Ticks:        analog.TickState().String(),
		Angles:       analog.Angles(),
		Tree:         rendering.Inspect(doc.Root()),
	}
}

// startDebugServer exposes the running clock over HTTP. The returned func
// shuts the server down.
func startDebugServer(ctx context.Context, addr string, eng *engine.Engine, doc *rendering.Document, analog *clock.AnalogClock, lifecycle *platform.LifecycleService, log *zap.Logger) (func(), error) {
	runtimeStats := engine.NewRuntimeSampleBuffer(0, 0)
	go runtimeStats.Run(ctx)

	srv, err := eng.StartDebugServer(engine.DebugConfig{
		Addr:    addr,
		Runtime: runtimeStats,
		Inspect: func() any {
			return inspectScene(eng, doc, analog, lifecycle)
		},
		Snapshot: func(w io.Writer) error {
			return rendering.EncodeSVG(w, doc)
		},
		Logger: log.Named("debug"),
	})
	if err != nil {
		return nil, err
	}
	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Close(shutdownCtx); err != nil {
			log.Warn("debug server shutdown", zap.Error(err))
		}
	}, nil
}

// reportFrameStats logs frame timings from the loop goroutine every interval.
func reportFrameStats(ctx context.Context, eng *engine.Engine, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			eng.Dispatch(func() {
				timings := eng.FrameTimings()
				pct := timings.Percentiles()
				log.Info("frame stats",
					zap.Uint64("frames", eng.Frames()),
					zap.Int("samples", timings.Count()),
					zap.Duration("avg", timings.Average()),
					zap.Duration("p50", pct.P50),
					zap.Duration("p95", pct.P95),
					zap.Duration("max", timings.Max()),
				)
			})
		}
	}
}
