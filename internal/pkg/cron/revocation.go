package cron

import (
	"context"
	"log/slog"
	"time"
)

// Purger drops expired entries from a store.
type Purger interface {
	Purge(ctx context.Context) (int, error)
}

// RegisterRevocationPurge schedules removal of expired revoked tokens.
func RegisterRevocationPurge(s *Scheduler, store Purger, interval time.Duration) {
	s.AddJob("purge_revoked_tokens", interval, func(ctx context.Context) error {
		dropped, err := store.Purge(ctx)
		if err != nil {
			return err
		}
		if dropped > 0 {
			slog.Info("Expired revoked tokens purged", "count", dropped)
		}
		return nil
	})
}
