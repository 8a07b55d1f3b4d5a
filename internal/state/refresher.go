package state

import (
	"context"
	"log"
	"time"

	"fleet-ops-backend/config"
	"fleet-ops-backend/internal/store"
)

// Refresher periodically re-loads the snapshot from the store. Other
// sessions write to the same database, so the snapshot drifts without it.
type Refresher struct {
	cfg   *config.RefreshConfig
	state *State
	store store.Store
}

// NewRefresher creates a refresher for the given state.
func NewRefresher(cfg *config.RefreshConfig, s *State, st store.Store) *Refresher {
	return &Refresher{cfg: cfg, state: s, store: st}
}

// Run starts the refresh loop. A failed refresh is logged and the
// previous snapshot is kept.
func (r *Refresher) Run(ctx context.Context) {
	if !r.cfg.Enabled {
		log.Println("Snapshot refresher is disabled. Not starting.")
		return
	}
	log.Println("Starting snapshot refresher...")

	timer := time.NewTimer(r.cfg.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Snapshot refresher shutting down.")
			return
		case <-timer.C:
			if err := r.state.Load(ctx, r.store); err != nil {
				log.Printf("Snapshot refresh failed: %v", err)
			}
			timer.Reset(r.cfg.Interval)
		}
	}
}
