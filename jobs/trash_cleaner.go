package jobs

import (
	"context"
	"log"
	"time"

	"drivehub/services"
)

// TrashCleaner periodically purges trashed nodes older than the retention
// window.
type TrashCleaner struct {
	trash     *services.TrashService
	retention time.Duration
	interval  time.Duration
	stop      chan struct{}
}

func NewTrashCleaner(trash *services.TrashService, retention, interval time.Duration) *TrashCleaner {
	return &TrashCleaner{
		trash:     trash,
		retention: retention,
		interval:  interval,
		stop:      make(chan struct{}),
	}
}

// Start runs the cleanup loop until Stop is called.
func (tc *TrashCleaner) Start() {
	go func() {
		ticker := time.NewTicker(tc.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				tc.runOnce()
			case <-tc.stop:
				return
			}
		}
	}()
	log.Printf("Trash cleaner started (retention %s, interval %s)", tc.retention, tc.interval)
}

// Stop terminates the cleanup loop.
func (tc *TrashCleaner) Stop() {
	close(tc.stop)
}

func (tc *TrashCleaner) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-tc.retention)
	purged, err := tc.trash.PurgeExpired(ctx, cutoff)
	if err != nil {
		log.Printf("Trash cleanup failed: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("Trash cleanup removed %d expired nodes", purged)
	}
}
