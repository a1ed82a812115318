package session

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Cleaner periodically sweeps expired session records from the store.
// It runs independently of request traffic, shares nothing with
// in-flight requests beyond the store itself, and never lets a failed
// sweep escape the log: the next tick simply retries.
type Cleaner struct {
	store     Store
	log       *slog.Logger
	opTimeout time.Duration

	mu     sync.Mutex
	ticker *time.Ticker
	done   chan struct{}
}

// NewCleaner creates a cleaner for the given store.
func NewCleaner(store Store, log *slog.Logger, opTimeout time.Duration) *Cleaner {
	if log == nil {
		log = slog.Default()
	}
	if opTimeout <= 0 {
		opTimeout = 30 * time.Second
	}
	return &Cleaner{
		store:     store,
		log:       log,
		opTimeout: opTimeout,
	}
}

// Start begins sweeping at the given interval. Calling Start on a
// running cleaner is a no-op: exactly one timer exists at a time.
func (c *Cleaner) Start(interval time.Duration) {
	if interval <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ticker != nil {
		return
	}

	c.ticker = time.NewTicker(interval)
	c.done = make(chan struct{})
	go c.loop(c.ticker, c.done)
}

// Stop cancels the timer. Safe to call repeatedly or before Start.
func (c *Cleaner) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ticker == nil {
		return
	}

	c.ticker.Stop()
	close(c.done)
	c.ticker = nil
	c.done = nil
}

func (c *Cleaner) loop(ticker *time.Ticker, done chan struct{}) {
	for {
		select {
		case <-ticker.C:
			c.Sweep(context.Background())
		case <-done:
			return
		}
	}
}

// Sweep runs one cleanup pass: a single bulk delete of past-expiry
// records. Errors are logged and swallowed; a failing store must not
// take the process down.
func (c *Cleaner) Sweep(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	removed, err := c.store.DeleteExpired(ctx)
	if err != nil {
		c.log.ErrorContext(ctx, "session cleanup failed",
			slog.Any("error", err),
			slog.String("component", "session_cleaner"),
		)
		return
	}

	if removed > 0 {
		c.log.InfoContext(ctx, "expired sessions removed",
			slog.Int64("count", removed),
			slog.String("component", "session_cleaner"),
		)
	}
}
