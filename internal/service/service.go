package service

import (
	"context"
	"errors"
	"time"

	"auromart/internal/apierror"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Dispatcher hands committed rows to the background workers.
// It may be nil, in which case nothing is enqueued and the retry cron
// picks undelivered notifications up later.
type Dispatcher interface {
	EnqueueNotification(ctx context.Context, notificationID uuid.UUID) error
	EnqueueInvoice(ctx context.Context, invoiceID uuid.UUID) error
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// enqueueNotifications must only run after the rows are committed.
// Failures are logged: the row stays undelivered and is retried by the cron.
func enqueueNotifications(ctx context.Context, d Dispatcher, ids ...uuid.UUID) {
	if d == nil {
		return
	}
	for _, id := range ids {
		if err := d.EnqueueNotification(ctx, id); err != nil {
			log.Warn().Err(err).Str("notification_id", id.String()).Msg("failed to enqueue notification")
		}
	}
}

// lookupErr converts a missing row into a NotFound error naming what.
func lookupErr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.NotFound("%s not found", what)
	}
	return err
}

func parseID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apierror.Validation("%s must be a valid id", field)
	}
	return id, nil
}

// monthStart is the first instant of now's calendar month in now's location.
func monthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
