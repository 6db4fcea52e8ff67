package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/go-drift/analogclock/cmd/analogclock/internal/config"
	"github.com/go-drift/analogclock/pkg/animation"
	"github.com/go-drift/analogclock/pkg/clock"
	"github.com/go-drift/analogclock/pkg/engine"
	"github.com/go-drift/analogclock/pkg/face"
	"github.com/go-drift/analogclock/pkg/platform"
	"github.com/go-drift/analogclock/pkg/rendering"
)

func TestParseCommonFlags(t *testing.T) {
	opts, err := parseRunArgs([]string{"--config", "a.yaml", "--config=b.yaml", "--out", "x.svg", "--fps=30"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.yaml", "b.yaml"}, opts.configFiles)
	assert.Equal(t, "x.svg", opts.out)
	assert.Equal(t, 30, opts.fps)

	_, err = parseRunArgs([]string{"--fps", "zero"})
	assert.Error(t, err)
	_, err = parseRunArgs([]string{"--out"})
	assert.Error(t, err)
	_, err = parseRunArgs([]string{"--bogus"})
	assert.Error(t, err)
}

func TestParseRunState(t *testing.T) {
	opts, err := parseRunArgs([]string{"--state", "paused", "--out=x.png"})
	require.NoError(t, err)
	assert.Equal(t, platform.LifecycleStatePaused, opts.state)
	assert.Equal(t, "x.png", opts.out)

	opts, err = parseRunArgs([]string{"--state=detached"})
	require.NoError(t, err)
	assert.Equal(t, platform.LifecycleStateDetached, opts.state)

	_, err = parseRunArgs([]string{"--state", "asleep"})
	assert.Error(t, err)
	_, err = parseRunArgs([]string{"--state"})
	assert.Error(t, err)
}

func TestParseSnapshotArgs(t *testing.T) {
	opts, err := parseSnapshotArgs([]string{"--time", "10:09", "--format=svg"})
	require.NoError(t, err)
	assert.Equal(t, "10:09", opts.at)
	assert.Equal(t, "svg", opts.format)
}

func TestParseClockTime(t *testing.T) {
	loc := time.FixedZone("X", 3600)
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, loc)

	got, err := parseClockTime("10:09:30", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 6, 10, 9, 30, 0, loc), got)

	got, err = parseClockTime("23:15", now)
	require.NoError(t, err)
	assert.Equal(t, 23, got.Hour())
	assert.Equal(t, 0, got.Second())

	got, err = parseClockTime("2024-01-02T03:04:05Z", now)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))

	_, err = parseClockTime("noon", now)
	assert.Error(t, err)
}

func TestRunInitWritesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clock.yaml")
	require.NoError(t, runInit([]string{path}))
	assert.Error(t, runInit([]string{path}), "second init should not overwrite")
	require.NoError(t, runInit([]string{path, "--force"}))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.CurrentVersion, cfg.Version)
}

func TestRenderSnapshot(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Path = filepath.Join(t.TempDir(), "clock.svg")
	cfg.Output.Format = "svg"

	at := time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC)
	require.NoError(t, renderSnapshot(cfg, at, zaptest.NewLogger(t)))

	data, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)
	out := string(data)
	assert.Equal(t, 12, strings.Count(out, `class="tick`), "rim marks should be drawn")

	hour := out[strings.Index(out, `class="hand hour-hand"`):]
	hour = hour[:strings.Index(hour, ">")]
	assert.Contains(t, hour, "rotate(90)")
}

func TestRunClockWritesFrames(t *testing.T) {
	cfg := config.Default()
	cfg.Clock.Location = "UTC"
	cfg.Engine.FPS = 100
	cfg.Output.Path = filepath.Join(t.TempDir(), "clock.svg")
	cfg.Output.Format = "svg"
	cfg.Engine.StatsInterval = 20 * time.Millisecond
	cfg.Engine.DebugAddr = "127.0.0.1:0"

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	require.NoError(t, runClock(ctx, cfg, zaptest.NewLogger(t), platform.NewLifecycleService()))
	assert.FileExists(t, cfg.Output.Path)
}

func TestRunClockHiddenWritesMountedFace(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Path = filepath.Join(t.TempDir(), "clock.svg")
	cfg.Output.Format = "svg"

	lifecycle := platform.NewLifecycleService()
	lifecycle.SetState(platform.LifecycleStatePaused)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	require.NoError(t, runClock(ctx, cfg, zaptest.NewLogger(t), lifecycle))

	data, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err, "the first render should reach the output while hidden")
	assert.Equal(t, 12, strings.Count(string(data), `class="tick`))
}

func TestInspectScene(t *testing.T) {
	doc := face.Build(rendering.Size{Width: 200, Height: 200}, nil)
	eng := engine.New(engine.Config{})
	lifecycle := platform.NewLifecycleService()
	at := time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC)
	analog := clock.New(doc, eng.Scheduler(), lifecycle, animation.FixedClock(at))
	analog.Mount()
	defer analog.Unmount()

	info := inspectScene(eng, doc, analog, lifecycle)
	assert.Equal(t, "running", info.State)
	assert.Equal(t, "resumed", info.Lifecycle)
	assert.True(t, info.Resumed)
	assert.True(t, info.FramePending)
	assert.InDelta(t, 90, info.Angles.Hours, 1e-9)

	lifecycle.SetState(platform.LifecycleStatePaused)
	info = inspectScene(eng, doc, analog, lifecycle)
	assert.Equal(t, "paused", info.State)
	assert.False(t, info.Resumed)
	assert.False(t, info.FramePending, "a hidden clock keeps no frame scheduled")
}

func TestExecuteUnknownCommand(t *testing.T) {
	assert.Error(t, Execute([]string{"frobnicate"}))
	assert.NoError(t, Execute([]string{"--version"}))
}
