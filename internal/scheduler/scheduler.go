// Package scheduler wires up the cron job that periodically deactivates
// postings whose expiry date has passed.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"vagalink/ingest-service/internal/metrics"
	"vagalink/ingest-service/internal/store"
)

// Scheduler wraps robfig/cron and manages the expiry sweep loop.
type Scheduler struct {
	cron  *cron.Cron
	store *store.Postgres
	spec  string // cron spec, e.g. "@every 6h"
}

// New creates a Scheduler that fires every intervalHours hours.
func New(st *store.Postgres, intervalHours int) *Scheduler {
	return &Scheduler{
		cron:  cron.New(cron.WithLogger(cron.DefaultLogger)),
		store: st,
		spec:  fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the scheduler. Also runs one sweep
// immediately so stale postings are cleared without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runSweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started — spec: %s", s.spec)

	// Run immediately on startup (non-blocking)
	go s.runSweep(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] Cron stopped")
}

// runSweep deactivates every posting past its expiry date.
func (s *Scheduler) runSweep(ctx context.Context) {
	log.Println("[scheduler] Expiry sweep started")

	n, err := s.store.DeactivateExpired(ctx)
	if err != nil {
		log.Printf("[scheduler] DeactivateExpired error: %v", err)
		return
	}

	metrics.PostingsExpiredTotal.Add(float64(n))
	log.Printf("[scheduler] Expiry sweep complete — deactivated=%d", n)
}
