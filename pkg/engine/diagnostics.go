package engine

import (
	"sync"
	"time"

	"github.com/montanaflynn/stats"
)

// FrameTimingBuffer is a ring buffer of frame durations.
type FrameTimingBuffer struct {
	mu       sync.RWMutex
	samples  []time.Duration
	index    int
	capacity int
	count    int
}

// NewFrameTimingBuffer creates a buffer holding the last capacity samples.
// Non-positive capacities default to 60.
func NewFrameTimingBuffer(capacity int) *FrameTimingBuffer {
	if capacity <= 0 {
		capacity = 60
	}
	return &FrameTimingBuffer{
		samples:  make([]time.Duration, capacity),
		capacity: capacity,
	}
}

// Add records a frame duration, overwriting the oldest sample when full.
func (b *FrameTimingBuffer) Add(duration time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.samples[b.index] = duration
	b.index = (b.index + 1) % b.capacity
	if b.count < b.capacity {
		b.count++
	}
}

// Samples returns a copy of the samples, oldest first.
func (b *FrameTimingBuffer) Samples() []time.Duration {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.count == 0 {
		return nil
	}
	result := make([]time.Duration, b.count)
	if b.count < b.capacity {
		copy(result, b.samples[:b.count])
	} else {
		copy(result, b.samples[b.index:])
		copy(result[b.capacity-b.index:], b.samples[:b.index])
	}
	return result
}

// Count returns the number of stored samples.
func (b *FrameTimingBuffer) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}

// Average returns the mean of the stored samples, or 0 when empty.
func (b *FrameTimingBuffer) Average() time.Duration {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.count == 0 {
		return 0
	}
	var total time.Duration
	for _, s := range b.samples[:b.count] {
		total += s
	}
	return total / time.Duration(b.count)
}

// Max returns the longest stored sample.
func (b *FrameTimingBuffer) Max() time.Duration {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var longest time.Duration
	for _, s := range b.samples[:b.count] {
		longest = max(longest, s)
	}
	return longest
}

// FramePercentiles summarizes the stored frame durations.
type FramePercentiles struct {
	P50 time.Duration
	P95 time.Duration
	P99 time.Duration
}

// Percentiles returns the median, 95th and 99th percentile of the stored
// samples, or zeros when empty.
func (b *FrameTimingBuffer) Percentiles() FramePercentiles {
	samples := b.Samples()
	if len(samples) == 0 {
		return FramePercentiles{}
	}
	data := make(stats.Float64Data, len(samples))
	for i, s := range samples {
		data[i] = float64(s)
	}

	// stats only fails on empty input or out-of-range percents.
	p50, _ := stats.Median(data)
	p95, _ := stats.Percentile(data, 95)
	p99, _ := stats.Percentile(data, 99)
	return FramePercentiles{
		P50: time.Duration(p50),
		P95: time.Duration(p95),
		P99: time.Duration(p99),
	}
}
