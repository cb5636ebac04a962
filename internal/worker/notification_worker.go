package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"auromart/internal/infra"
	"auromart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// MessageSender is satisfied by *infra.WhatsappClient.
type MessageSender interface {
	Enabled() bool
	Send(ctx context.Context, to, body string) (string, error)
}

// NotificationWorker pushes notification rows to the recipient's WhatsApp
// number and marks them delivered.
type NotificationWorker struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
	sender        MessageSender
	cb            *infra.CircuitBreaker
	now           func() time.Time
}

func NewNotificationWorker(
	notifications repository.NotificationRepository,
	users repository.UserRepository,
	sender MessageSender,
	cb *infra.CircuitBreaker,
) *NotificationWorker {
	return &NotificationWorker{notifications: notifications, users: users, sender: sender, cb: cb, now: time.Now}
}

// Process leaves the row undelivered, without error, when there is no
// channel to deliver on. The retry cron picks it up later.
func (w *NotificationWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload NotificationJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Permanent(fmt.Errorf("notification_worker: invalid payload: %w", err))
	}
	id, err := uuid.Parse(payload.NotificationID)
	if err != nil {
		return Permanent(fmt.Errorf("notification_worker: invalid notification_id %q", payload.NotificationID))
	}

	n, err := w.notifications.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn().Str("notification_id", payload.NotificationID).Msg("notification_worker: notification vanished")
			return nil
		}
		return err
	}
	if n.IsDelivered {
		return nil
	}
	if w.sender == nil || !w.sender.Enabled() {
		log.Debug().Str("notification_id", payload.NotificationID).Msg("notification_worker: gateway disabled, leaving undelivered")
		return nil
	}

	user, err := w.users.FindByID(ctx, n.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Permanent(fmt.Errorf("notification_worker: user %s not found", n.UserID))
		}
		return err
	}
	if user.WhatsappNumber == nil || *user.WhatsappNumber == "" {
		log.Debug().Str("user_id", user.ID.String()).Msg("notification_worker: user has no whatsapp number")
		return nil
	}

	var sid string
	err = w.cb.Execute(func() error {
		var sendErr error
		sid, sendErr = w.sender.Send(ctx, *user.WhatsappNumber, n.Message)
		return sendErr
	})
	if errors.Is(err, infra.ErrCircuitOpen) {
		log.Debug().Str("notification_id", payload.NotificationID).Msg("notification_worker: circuit open, deferring to retry cron")
		return nil
	}
	if err != nil {
		return err
	}

	if err := w.notifications.MarkDelivered(ctx, n.ID, w.now()); err != nil {
		return err
	}
	log.Info().
		Str("notification_id", payload.NotificationID).
		Str("message_sid", sid).
		Msg("notification_worker: delivered")
	return nil
}
