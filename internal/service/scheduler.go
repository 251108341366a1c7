package service

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// initialRefreshDelay is how long after startup the first refresh fires, so
// the server is responsive immediately and prices arrive shortly after.
const initialRefreshDelay = 5 * time.Second

// RefreshScheduler triggers periodic re-pricing and snapshotting. Each
// firing is fire-and-forget: a slow or failed refresh is logged and never
// blocks the next tick. A refresh that outlives its interval simply overlaps
// the next one, which is safe because cache writes replace whole records.
type RefreshScheduler struct {
	prices    *PriceService
	snapshots *SnapshotService
	interval  time.Duration

	mu      sync.Mutex
	cron    *cron.Cron
	initial *time.Timer
}

// NewRefreshScheduler creates a scheduler firing at the given interval.
func NewRefreshScheduler(prices *PriceService, snapshots *SnapshotService, interval time.Duration) *RefreshScheduler {
	return &RefreshScheduler{
		prices:    prices,
		snapshots: snapshots,
		interval:  interval,
	}
}

// Start begins the repeating refresh plus a one-shot delayed initial run.
// Calling Start on a running scheduler is a no-op.
func (s *RefreshScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", s.interval), s.runOnce); err != nil {
		return fmt.Errorf("failed to schedule refresh: %w", err)
	}
	c.Start()

	s.cron = c
	s.initial = time.AfterFunc(initialRefreshDelay, s.runOnce)

	log.Printf("Refresh scheduler started (interval %s)", s.interval)
	return nil
}

// Stop cancels future firings. It is synchronous and idempotent: calling it
// on a stopped scheduler is a no-op. An already-running refresh is allowed
// to finish; its cache and storage writes are atomic per key.
func (s *RefreshScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return
	}

	s.initial.Stop()
	s.cron.Stop()
	s.cron = nil
	s.initial = nil

	log.Println("Refresh scheduler stopped")
}

// Reschedule changes the firing interval. A running scheduler is restarted
// on the new interval; a stopped one just remembers it for the next Start.
func (s *RefreshScheduler) Reschedule(interval time.Duration) error {
	s.mu.Lock()
	running := s.cron != nil
	s.interval = interval
	s.mu.Unlock()

	if !running {
		return nil
	}

	s.Stop()
	return s.Start()
}

// runOnce performs one refresh-then-snapshot pass. Failures are logged, not
// propagated; the next tick runs regardless.
func (s *RefreshScheduler) runOnce() {
	if err := s.prices.RefreshAll(); err != nil {
		log.Printf("scheduled price refresh failed: %v", err)
	}
	if _, err := s.snapshots.CreateSnapshot(); err != nil {
		log.Printf("scheduled snapshot failed: %v", err)
	}
}
