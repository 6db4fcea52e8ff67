package engine

import (
	"context"
	"runtime"
	"sync"
	"time"
)

const (
	runtimeSampleIntervalDefault = 5 * time.Second
	runtimeSampleWindowDefault   = 60 * time.Second
	runtimeSampleMinInterval     = 10 * time.Millisecond
	runtimeSampleMaxSamples      = 120
)

// RuntimeSample captures a snapshot of runtime memory/GC stats.
type RuntimeSample struct {
	Timestamp    int64  `json:"ts"`
	HeapAlloc    uint64 `json:"heapAlloc"`
	HeapInuse    uint64 `json:"heapInuse"`
	NumGC        uint32 `json:"numGC"`
	PauseTotalNs uint64 `json:"pauseTotalNs"`
	LastPauseNs  uint64 `json:"lastPauseNs"`
	Goroutines   int    `json:"goroutines"`
}

// RuntimeSampleBuffer stores recent runtime samples in a ring buffer.
type RuntimeSampleBuffer struct {
	mu       sync.RWMutex
	samples  []RuntimeSample
	index    int
	count    int
	interval time.Duration
}

// NewRuntimeSampleBuffer creates a buffer holding window worth of samples
// taken every interval. Zero values select the defaults.
func NewRuntimeSampleBuffer(window, interval time.Duration) *RuntimeSampleBuffer {
	if interval <= 0 {
		interval = runtimeSampleIntervalDefault
	}
	interval = max(interval, runtimeSampleMinInterval)
	if window <= 0 {
		window = runtimeSampleWindowDefault
	}
	window = max(window, interval)

	capacity := min(max(int(window/interval), 1), runtimeSampleMaxSamples)
	return &RuntimeSampleBuffer{
		samples:  make([]RuntimeSample, capacity),
		interval: interval,
	}
}

// Interval returns the sampling interval.
func (b *RuntimeSampleBuffer) Interval() time.Duration {
	return b.interval
}

// Add stores a runtime sample.
func (b *RuntimeSampleBuffer) Add(sample RuntimeSample) {
	b.mu.Lock()
	b.samples[b.index] = sample
	b.index = (b.index + 1) % len(b.samples)
	if b.count < len(b.samples) {
		b.count++
	}
	b.mu.Unlock()
}

// Snapshot returns samples in chronological order.
func (b *RuntimeSampleBuffer) Snapshot() []RuntimeSample {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.count == 0 {
		return nil
	}

	result := make([]RuntimeSample, b.count)
	if b.count < len(b.samples) {
		copy(result, b.samples[:b.count])
	} else {
		copy(result, b.samples[b.index:])
		copy(result[len(b.samples)-b.index:], b.samples[:b.index])
	}
	return result
}

// Latest returns the most recent sample.
func (b *RuntimeSampleBuffer) Latest() (RuntimeSample, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.count == 0 {
		return RuntimeSample{}, false
	}
	return b.samples[(b.index-1+len(b.samples))%len(b.samples)], true
}

// Run samples the runtime every interval until ctx is cancelled. The first
// sample is taken immediately.
func (b *RuntimeSampleBuffer) Run(ctx context.Context) {
	b.Add(ReadRuntimeSample())

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.Add(ReadRuntimeSample())
		}
	}
}

// ReadRuntimeSample reads the current memory and GC statistics.
func ReadRuntimeSample() RuntimeSample {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	lastPause := uint64(0)
	if stats.NumGC > 0 {
		index := (stats.NumGC - 1) % 256
		lastPause = stats.PauseNs[index]
	}

	return RuntimeSample{
		Timestamp:    time.Now().UnixMilli(),
		HeapAlloc:    stats.HeapAlloc,
		HeapInuse:    stats.HeapInuse,
		NumGC:        stats.NumGC,
		PauseTotalNs: stats.PauseTotalNs,
		LastPauseNs:  lastPause,
		Goroutines:   runtime.NumGoroutine(),
	}
}
