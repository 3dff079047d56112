package tenancy

import (
	"log/slog"
	"time"
)

// DefaultSweepInterval is how often the sweeper scans for idle handles.
const DefaultSweepInterval = 5 * time.Minute

// Sweeper periodically closes tenant connections that have sat idle
// past the pool's idle TTL, so the pool does not pin a live connection
// for every tenant ever served.
type Sweeper struct {
	Pool     *Pool
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewSweeper creates a sweeper for pool. If interval is 0 or negative,
// defaults to DefaultSweepInterval.
func NewSweeper(pool *Pool, logger *slog.Logger, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Sweeper{
		Pool:     pool,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker that evicts idle connections.
// This is non-blocking. Call Stop() to gracefully shut the worker down.
func (s *Sweeper) Start() {
	go s.run()
	s.Logger.Info("connection sweeper started",
		"interval", s.Interval,
		"idle_ttl", s.Pool.IdleTTL(),
	)
}

// Stop gracefully shuts down the background worker. Blocks until any
// in-progress sweep has finished.
func (s *Sweeper) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("connection sweeper stopped")
}

// run is the main background worker loop. The first sweep fires one
// interval after Start; the pool is empty before that.
func (s *Sweeper) run() {
	defer close(s.doneCh)

	ticker := s.Pool.clock.Ticker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

// sweep evicts handles idle past the pool's TTL. A zero TTL disables
// idle eviction.
func (s *Sweeper) sweep() {
	ttl := s.Pool.IdleTTL()
	if ttl <= 0 {
		return
	}

	cutoff := s.Pool.clock.Now().Add(-ttl)
	if n := s.Pool.EvictIdle(cutoff); n > 0 {
		s.Logger.Info("idle tenant connections closed", "count", n)
	}
}
