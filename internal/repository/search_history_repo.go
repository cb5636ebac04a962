package repository

import (
	"context"

	"auromart/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SearchHistoryRepository interface {
	Create(ctx context.Context, h *model.SearchHistory) error
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]model.SearchHistory, error)
}

type searchHistoryRepo struct{ db *gorm.DB }

func NewSearchHistoryRepository(db *gorm.DB) SearchHistoryRepository {
	return &searchHistoryRepo{db: db}
}

func (r *searchHistoryRepo) Create(ctx context.Context, h *model.SearchHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *searchHistoryRepo) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]model.SearchHistory, error) {
	var rows []model.SearchHistory
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
