package animation

import (
	"context"
	"sync"
	"time"

	"github.com/beevik/ntp"
	"go.uber.org/zap"
)

const defaultNTPServer = "pool.ntp.org"

// Sync cadence and query timeout used when none is configured.
const (
	DefaultNTPInterval = 15 * time.Minute
	DefaultNTPTimeout  = 5 * time.Second
)

// QueryFunc queries an NTP server and returns the local clock offset.
type QueryFunc func(server string, timeout time.Duration) (time.Duration, error)

func queryNTP(server string, timeout time.Duration) (time.Duration, error) {
	resp, err := ntp.QueryWithOptions(server, ntp.QueryOptions{Timeout: timeout})
	if err != nil {
		return 0, err
	}
	if err := resp.Validate(); err != nil {
		return 0, err
	}
	return resp.ClockOffset, nil
}

// NTPClock is a Clock corrected by periodically querying an NTP server.
// A failed sync keeps the last known offset. Readings never decrease: after
// a negative correction Now holds at the last reading until real time
// catches up.
type NTPClock struct {
	server   string
	interval time.Duration
	timeout  time.Duration
	location *time.Location
	logger   *zap.Logger
	query    QueryFunc

	mu     sync.Mutex
	offset time.Duration
	last   time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// NTPOption configures an NTPClock.
type NTPOption func(*NTPClock)

// WithNTPServer sets the NTP server address.
func WithNTPServer(server string) NTPOption {
	return func(c *NTPClock) { c.server = server }
}

// WithNTPInterval sets the re-sync interval.
func WithNTPInterval(d time.Duration) NTPOption {
	return func(c *NTPClock) { c.interval = d }
}

// WithNTPTimeout sets the query timeout.
func WithNTPTimeout(d time.Duration) NTPOption {
	return func(c *NTPClock) { c.timeout = d }
}

// WithNTPLocation converts readings to loc.
func WithNTPLocation(loc *time.Location) NTPOption {
	return func(c *NTPClock) { c.location = loc }
}

// WithNTPLogger sets the logger.
func WithNTPLogger(l *zap.Logger) NTPOption {
	return func(c *NTPClock) { c.logger = l }
}

// WithNTPQuery replaces the network query, for tests.
func WithNTPQuery(q QueryFunc) NTPOption {
	return func(c *NTPClock) { c.query = q }
}

// NewNTPClock creates an NTPClock. Call Start to begin syncing.
func NewNTPClock(opts ...NTPOption) *NTPClock {
	c := &NTPClock{
		server:   defaultNTPServer,
		interval: DefaultNTPInterval,
		timeout:  DefaultNTPTimeout,
		logger:   zap.NewNop(),
		query:    queryNTP,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Now returns the current time adjusted by the NTP offset, never earlier
// than a previous reading.
func (c *NTPClock) Now() time.Time {
	c.mu.Lock()
	now := time.Now().Add(c.offset)
	if now.Before(c.last) {
		now = c.last
	} else {
		c.last = now
	}
	c.mu.Unlock()

	if c.location != nil {
		return now.In(c.location)
	}
	return now
}

// Offset returns the current NTP offset.
func (c *NTPClock) Offset() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offset
}

// Start performs an initial sync and re-syncs in the background until ctx
// is cancelled or Stop is called.
func (c *NTPClock) Start(ctx context.Context) {
	c.Sync()

	ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})
	go c.run(ctx)
}

// Stop shuts down the background sync goroutine.
func (c *NTPClock) Stop() {
	if c.cancel != nil {
		c.cancel()
		<-c.done
		c.cancel = nil
	}
}

func (c *NTPClock) run(ctx context.Context) {
	defer close(c.done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Sync()
		}
	}
}

// Sync queries the server once and updates the offset on success.
func (c *NTPClock) Sync() {
	offset, err := c.query(c.server, c.timeout)
	if err != nil {
		c.logger.Warn("ntp sync failed, keeping last offset",
			zap.String("server", c.server), zap.Error(err))
		return
	}

	c.mu.Lock()
	c.offset = offset
	c.mu.Unlock()

	c.logger.Info("ntp sync", zap.String("server", c.server), zap.Duration("offset", offset))
}
