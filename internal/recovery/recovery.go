package recovery

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"storyreel-client/internal/config"
	"storyreel-client/internal/models"
	"storyreel-client/internal/store"
)

// SnapshotFetcher is the recovery slice of the API client.
type SnapshotFetcher interface {
	GetStoryboard(ctx context.Context, storyboardID uuid.UUID) (*models.StoryboardSnapshot, error)
}

// Recoverer repairs store state after missed stream events by
// re-fetching the authoritative snapshot. The fetch-and-replace always
// wins over incremental patches; a failed fetch leaves the store
// untouched so the UI keeps showing the last known state.
type Recoverer struct {
	fetcher  SnapshotFetcher
	store    *store.Store
	interval time.Duration

	mu         sync.Mutex
	recovering bool
	err        error
	cron       *cron.Cron
}

func New(fetcher SnapshotFetcher, st *store.Store, interval time.Duration) *Recoverer {
	return &Recoverer{
		fetcher:  fetcher,
		store:    st,
		interval: interval,
	}
}

// Recover fetches the full snapshot and replaces store state on
// success.
func (r *Recoverer) Recover(ctx context.Context, storyboardID uuid.UUID) error {
	r.mu.Lock()
	r.recovering = true
	r.err = nil
	r.mu.Unlock()

	snapshot, err := r.fetcher.GetStoryboard(ctx, storyboardID)

	r.mu.Lock()
	r.recovering = false
	if err != nil {
		r.err = err
		r.mu.Unlock()
		return fmt.Errorf("failed to recover storyboard: %w", err)
	}
	r.mu.Unlock()

	r.store.ReplaceSnapshot(snapshot.Storyboard, snapshot.Scenes)
	return nil
}

// StartPeriodic schedules a resync every interval. Each tick refetches
// the snapshot and reconnects the event stream when it has dropped.
func (r *Recoverer) StartPeriodic(storyboardID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cron != nil {
		return nil
	}

	c := cron.New()
	spec := fmt.Sprintf("@every %s", r.interval)
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.interval)
		defer cancel()
		if err := r.Recover(ctx, storyboardID); err != nil {
			config.Log.WithError(err).Warn("periodic resync failed")
			return
		}
		if _, connected := r.store.Connected(); !connected {
			r.store.ConnectSSE(storyboardID)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule resync: %w", err)
	}
	c.Start()
	r.cron = c
	return nil
}

// StopPeriodic halts the resync schedule. Safe to call repeatedly.
func (r *Recoverer) StopPeriodic() {
	r.mu.Lock()
	c := r.cron
	r.cron = nil
	r.mu.Unlock()
	if c != nil {
		c.Stop()
	}
}

// IsRecovering reports whether a snapshot fetch is in progress, so the
// UI can show a non-blocking syncing indicator.
func (r *Recoverer) IsRecovering() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recovering
}

func (r *Recoverer) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
