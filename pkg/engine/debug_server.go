package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// debugCallTimeout bounds how long a handler waits for the frame loop.
const debugCallTimeout = 2 * time.Second

// DebugConfig configures the HTTP inspection server.
type DebugConfig struct {
	// Addr is the listen address, e.g. "127.0.0.1:9090" or ":0".
	Addr string
	// Runtime provides /runtime samples. Optional.
	Runtime *RuntimeSampleBuffer
	// Inspect returns a JSON-encodable view of the scene for /tree. It runs
	// on the loop goroutine. Optional.
	Inspect func() any
	// Snapshot writes the current scene as SVG for /snapshot.svg. It runs on
	// the loop goroutine. Optional.
	Snapshot func(w io.Writer) error
	Logger   *zap.Logger
}

// DebugServer serves frame timings, runtime stats and scene snapshots.
type DebugServer struct {
	engine   *Engine
	cfg      DebugConfig
	logger   *zap.Logger
	server   *http.Server
	listener net.Listener
}

// FrameStats is the /frames response.
type FrameStats struct {
	Frames    uint64    `json:"frames"`
	Count     int       `json:"count"`
	AverageMs float64   `json:"averageMs"`
	MaxMs     float64   `json:"maxMs"`
	P50Ms     float64   `json:"p50Ms"`
	P95Ms     float64   `json:"p95Ms"`
	P99Ms     float64   `json:"p99Ms"`
	SamplesMs []float64 `json:"samplesMs"`
}

// StartDebugServer binds cfg.Addr and serves in the background until Close.
func (e *Engine) StartDebugServer(cfg DebugConfig) (*DebugServer, error) {
	// Bind listener first to fail fast on port conflicts
	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("debug server listen: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &DebugServer{engine: e, cfg: cfg, logger: logger, listener: listener}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/frames", s.handleFrames)
	mux.HandleFunc("/runtime", s.handleRuntime)
	mux.HandleFunc("/tree", s.handleTree)
	mux.HandleFunc("/snapshot.svg", s.handleSnapshot)
	s.server = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("debug server error", zap.Error(err))
		}
	}()

	s.logger.Info("debug server listening", zap.String("addr", s.Addr()))
	return s, nil
}

// Addr returns the bound address, useful when listening on port 0.
func (s *DebugServer) Addr() string {
	return s.listener.Addr().String()
}

// Close gracefully shuts down the server.
func (s *DebugServer) Close(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// parseLimit reads ?limit=N. Zero means no limit.
func parseLimit(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func lastN[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[len(items)-n:]
	}
	return items
}

func (s *DebugServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *DebugServer) handleFrames(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	timings := s.engine.FrameTimings()
	samples := lastN(timings.Samples(), parseLimit(r))
	pct := timings.Percentiles()
	resp := FrameStats{
		Frames:    s.engine.Frames(),
		Count:     timings.Count(),
		AverageMs: durationMs(timings.Average()),
		MaxMs:     durationMs(timings.Max()),
		P50Ms:     durationMs(pct.P50),
		P95Ms:     durationMs(pct.P95),
		P99Ms:     durationMs(pct.P99),
		SamplesMs: make([]float64, len(samples)),
	}
	for i, d := range samples {
		resp.SamplesMs[i] = durationMs(d)
	}
	writeJSON(w, resp)
}

func (s *DebugServer) handleRuntime(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	if s.cfg.Runtime == nil {
		http.Error(w, "runtime sampling disabled", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, struct {
		Samples []RuntimeSample `json:"samples"`
	}{
		Samples: lastN(s.cfg.Runtime.Snapshot(), parseLimit(r)),
	})
}

func (s *DebugServer) handleTree(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	if s.cfg.Inspect == nil {
		http.Error(w, "scene inspection disabled", http.StatusServiceUnavailable)
		return
	}
	var tree any
	if !s.onLoop(w, r, func() { tree = s.cfg.Inspect() }) {
		return
	}
	writeJSON(w, tree)
}

func (s *DebugServer) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	if s.cfg.Snapshot == nil {
		http.Error(w, "snapshots disabled", http.StatusServiceUnavailable)
		return
	}
	var buf bytes.Buffer
	var err error
	if !s.onLoop(w, r, func() { err = s.cfg.Snapshot(&buf) }) {
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("snapshot error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(buf.Bytes())
}

// onLoop runs fn on the frame loop, writing an error response on timeout.
func (s *DebugServer) onLoop(w http.ResponseWriter, r *http.Request, fn func()) bool {
	ctx, cancel := context.WithTimeout(r.Context(), debugCallTimeout)
	defer cancel()

	if err := s.engine.Call(ctx, fn); err != nil {
		http.Error(w, "frame loop busy", http.StatusServiceUnavailable)
		return false
	}
	return true
}

func durationMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
