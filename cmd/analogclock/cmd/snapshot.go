package cmd

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/go-drift/analogclock/cmd/analogclock/internal/config"
	"github.com/go-drift/analogclock/cmd/analogclock/internal/sink"
	"github.com/go-drift/analogclock/pkg/animation"
	"github.com/go-drift/analogclock/pkg/clock"
	"github.com/go-drift/analogclock/pkg/face"
	"github.com/go-drift/analogclock/pkg/platform"
	"github.com/go-drift/analogclock/pkg/rendering"
)

func init() {
	RegisterCommand(&Command{
		Name:  "snapshot",
		Short: "Render a single frame",
		Long: `Render the clock once and write it to the output file.

The time defaults to now in the configured location. --time accepts an
RFC 3339 timestamp or a time of day (15:04 or 15:04:05) on today's date.

Flags:
  --config PATH   Config file to load (repeatable)
  --out PATH      Output image path (overrides output.path)
  --format FMT    png or svg (defaults to the --out extension)
  --time VALUE    Time to draw

Examples:
  analogclock snapshot --out clock.svg
  analogclock snapshot --time 10:09:30 --out tenpast.png
  analogclock snapshot --time 2024-06-01T23:59:59+02:00`,
		Usage: "analogclock snapshot [--config PATH]... [--out PATH] [--format png|svg] [--time VALUE]",
		Run:   runSnapshot,
	})
}

type snapshotOptions struct {
	commonOptions
	at string
}

func parseSnapshotArgs(args []string) (snapshotOptions, error) {
	var opts snapshotOptions
	for i := 0; i < len(args); i++ {
		next, ok, err := parseCommonFlag(args, i, &opts.commonOptions)
		if err != nil {
			return opts, err
		}
		if ok {
			i = next
			continue
		}
		switch {
		case args[i] == "--time":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("--time requires a value")
			}
			opts.at = args[i+1]
			i++
		case strings.HasPrefix(args[i], "--time="):
			opts.at = strings.TrimPrefix(args[i], "--time=")
		default:
			return opts, fmt.Errorf("unknown argument %q\n\nUsage: analogclock snapshot [--out PATH] [--time VALUE]", args[i])
		}
	}
	return opts, nil
}

func runSnapshot(args []string) error {
	opts, err := parseSnapshotArgs(args)
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

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	at := time.Now().In(loc)
	if opts.at != "" {
		at, err = parseClockTime(opts.at, at)
		if err != nil {
			return err
		}
	}

	if err := renderSnapshot(cfg, at, log); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%s)\n", cfg.Output.Path, at.Format("15:04:05 MST"))
	return nil
}

// renderSnapshot mounts a clock frozen at at and writes one frame.
func renderSnapshot(cfg *config.Config, at time.Time, log *zap.Logger) error {
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
	sched := animation.NewScheduler()
	analog := clock.New(doc, sched, platform.NewLifecycleService(), animation.FixedClock(at),
		clock.WithTickStyle(face.TickStyle(size, th)),
		clock.WithLogger(log.Named("clock")),
	)
	analog.Mount()
	defer analog.Unmount()

	return sink.WriteFile(cfg.Output.Path, doc, format)
}

// parseClockTime accepts RFC 3339 or a time of day applied to now's date
// and location.
func parseClockTime(value string, now time.Time) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		y, m, d := now.Date()
		return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, now.Location()), nil
	}
	return time.Time{}, fmt.Errorf("invalid --time %q (use RFC 3339, 15:04 or 15:04:05)", value)
}
