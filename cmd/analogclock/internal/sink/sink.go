// Package sink writes presented clock frames to disk.
package sink

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jamiealquiza/tachymeter"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/go-drift/analogclock/pkg/rendering"
)

// Format is an output image encoding.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat validates s as a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPNG, FormatSVG:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q (use png or svg)", s)
	}
}

// Encode writes doc to w in the given format.
func Encode(w io.Writer, doc *rendering.Document, format Format) error {
	switch format {
	case FormatSVG:
		return rendering.EncodeSVG(w, doc)
	case FormatPNG:
		return png.Encode(w, rendering.Rasterize(doc))
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteFile atomically replaces path with doc encoded in format. Readers
// never observe a partially written image.
func WriteFile(path string, doc *rendering.Document, format Format) error {
	var buf bytes.Buffer
	if err := Encode(&buf, doc, format); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// Options configures a FileSink.
type Options struct {
	Path   string
	Format Format
	// MaxWritesPerSecond caps disk writes. Zero or negative means unlimited.
	MaxWritesPerSecond float64
	// LatencyWindow is how many recent write durations are kept for
	// WriteLatency. Defaults to 256.
	LatencyWindow int
	Logger        *zap.Logger
}

// Latency summarizes recent write durations.
type Latency struct {
	Samples int
	P50     time.Duration
	P95     time.Duration
	Max     time.Duration
}

const defaultLatencyWindow = 256

// FileSink is an engine presenter that writes the document to a file,
// dropping frames that exceed the write rate.
type FileSink struct {
	doc     *rendering.Document
	path    string
	format  Format
	limiter *rate.Limiter
	tach    *tachymeter.Tachymeter
	logger  *zap.Logger

	dirty   bool
	written uint64
	skipped uint64
}

// New creates a sink presenting doc.
func New(doc *rendering.Document, opts Options) *FileSink {
	limit := rate.Inf
	if opts.MaxWritesPerSecond > 0 {
		limit = rate.Limit(opts.MaxWritesPerSecond)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	window := opts.LatencyWindow
	if window <= 0 {
		window = defaultLatencyWindow
	}
	format := opts.Format
	if format == "" {
		format = FormatPNG
	}
	return &FileSink{
		doc:     doc,
		path:    opts.Path,
		format:  format,
		limiter: rate.NewLimiter(limit, 1),
		tach:    tachymeter.New(&tachymeter.Config{Size: window}),
		logger:  logger.With(zap.String("path", opts.Path), zap.String("format", string(format))),
	}
}

// Present writes the current document unless the write budget for
// frameTime is exhausted. Skipped frames leave the sink dirty until the next
// write or Flush.
func (s *FileSink) Present(frameTime time.Time) error {
	if !s.limiter.AllowN(frameTime, 1) {
		s.dirty = true
		s.skipped++
		return nil
	}
	return s.write()
}

// Flush writes the document if a frame was skipped since the last write.
func (s *FileSink) Flush() error {
	if !s.dirty {
		return nil
	}
	return s.write()
}

func (s *FileSink) write() error {
	start := time.Now()
	if err := WriteFile(s.path, s.doc, s.format); err != nil {
		s.dirty = true
		return err
	}
	s.tach.AddTime(time.Since(start))
	s.dirty = false
	s.written++
	if s.written == 1 {
		s.logger.Info("first frame written")
	}
	return nil
}

// Written returns how many frames reached disk.
func (s *FileSink) Written() uint64 { return s.written }

// Skipped returns how many frames were dropped by the rate limit.
func (s *FileSink) Skipped() uint64 { return s.skipped }

// WriteLatency reports encode-and-write durations over the recent window.
func (s *FileSink) WriteLatency() Latency {
	if s.written == 0 {
		return Latency{}
	}
	m := s.tach.Calc()
	return Latency{
		Samples: m.Samples,
		P50:     m.Time.P50,
		P95:     m.Time.P95,
		Max:     m.Time.Max,
	}
}
