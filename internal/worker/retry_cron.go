package worker

import (
	"context"
	"time"

	"auromart/internal/infra"
	"auromart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const retryBatchSize = 100

// NotificationEnqueuer is satisfied by *Dispatcher.
type NotificationEnqueuer interface {
	EnqueueNotification(ctx context.Context, id uuid.UUID) error
}

type RetryCronConfig struct {
	Notifications repository.NotificationRepository
	Queue         NotificationEnqueuer
	CB            *infra.CircuitBreaker
	// Interval is both the tick period and the minimum age of a row before
	// it is re-enqueued.
	Interval time.Duration
}

// StartRetryCron re-enqueues stale undelivered notifications every Interval
// until ctx is cancelled.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Dur("interval", cfg.Interval).Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				RequeueStaleNotifications(ctx, cfg, time.Now())
			}
		}
	}()
}

// RequeueStaleNotifications runs one tick and returns how many rows were
// re-enqueued. Ticks are skipped while the breaker is open.
func RequeueStaleNotifications(ctx context.Context, cfg RetryCronConfig, now time.Time) int {
	if cfg.CB != nil && cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return 0
	}

	rows, err := cfg.Notifications.ListStale(ctx, now.Add(-cfg.Interval), retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to list stale notifications")
		return 0
	}

	queued := 0
	for i := range rows {
		if err := cfg.Queue.EnqueueNotification(ctx, rows[i].ID); err != nil {
			log.Warn().Err(err).Str("notification_id", rows[i].ID.String()).Msg("retry_cron: enqueue failed")
			continue
		}
		queued++
	}
	if queued > 0 {
		log.Info().Int("count", queued).Msg("retry_cron: re-enqueued stale notifications")
	}
	return queued
}
