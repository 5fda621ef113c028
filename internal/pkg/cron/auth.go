package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/auth"
)

const PruneRefreshTokensJob = "prune_refresh_tokens"

// RegisterAuthJobs schedules deletion of refresh tokens that expired more than a day ago.
func RegisterAuthJobs(s *Scheduler, repo auth.RefreshTokenRepository, interval time.Duration) {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	s.Register(PruneRefreshTokensJob, interval, func(ctx context.Context) error {
		n, err := repo.DeleteExpired(ctx, time.Now().Add(-24*time.Hour))
		if err != nil {
			return err
		}
		if n > 0 {
			slog.Info("Expired refresh tokens pruned", "count", n)
		}
		return nil
	})
}
