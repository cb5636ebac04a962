package service

import (
	"context"
	"time"

	"auromart/internal/apierror"
	"auromart/internal/dto"
	"auromart/internal/model"
	"auromart/internal/repository"

	"github.com/google/uuid"
)

const notificationHistoryLimit = 50

type NotificationService interface {
	ListUndelivered(ctx context.Context, userID uuid.UUID) ([]dto.NotificationResponse, error)
	History(ctx context.Context, userID uuid.UUID) ([]dto.NotificationResponse, error)
	MarkDelivered(ctx context.Context, userID, notificationID uuid.UUID) (*dto.NotificationResponse, error)
}

type notificationService struct {
	repo repository.NotificationRepository
	now  func() time.Time
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo, now: time.Now}
}

func (s *notificationService) ListUndelivered(ctx context.Context, userID uuid.UUID) ([]dto.NotificationResponse, error) {
	rows, err := s.repo.ListUndelivered(ctx, userID)
	if err != nil {
		return nil, err
	}
	return notificationsToResponse(rows), nil
}

func (s *notificationService) History(ctx context.Context, userID uuid.UUID) ([]dto.NotificationResponse, error) {
	rows, err := s.repo.ListRecent(ctx, userID, notificationHistoryLimit)
	if err != nil {
		return nil, err
	}
	return notificationsToResponse(rows), nil
}

// MarkDelivered answers NotFound for another user's notification so ids
// cannot be probed.
func (s *notificationService) MarkDelivered(ctx context.Context, userID, notificationID uuid.UUID) (*dto.NotificationResponse, error) {
	n, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		return nil, lookupErr(err, "notification")
	}
	if n.UserID != userID {
		return nil, apierror.NotFound("notification not found")
	}
	if !n.IsDelivered {
		now := s.now()
		if err := s.repo.MarkDelivered(ctx, n.ID, now); err != nil {
			return nil, err
		}
		n.IsDelivered = true
		n.SentAt = &now
	}
	resp := notificationToResponse(n)
	return &resp, nil
}

func notificationsToResponse(rows []model.Notification) []dto.NotificationResponse {
	out := make([]dto.NotificationResponse, len(rows))
	for i := range rows {
		out[i] = notificationToResponse(&rows[i])
	}
	return out
}
