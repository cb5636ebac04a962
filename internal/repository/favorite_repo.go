package repository

import (
	"context"

	"auromart/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FavoriteRepository interface {
	Create(ctx context.Context, f *model.Favorite) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error)
	// Delete reports how many rows were removed.
	Delete(ctx context.Context, userID, favoriteUserID uuid.UUID) (int64, error)
	Exists(ctx context.Context, userID, favoriteUserID uuid.UUID) (bool, error)
}

type favoriteRepo struct{ db *gorm.DB }

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository { return &favoriteRepo{db: db} }

func (r *favoriteRepo) Create(ctx context.Context, f *model.Favorite) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *favoriteRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error) {
	var rows []model.Favorite
	err := r.db.WithContext(ctx).
		Preload("FavoriteUser").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *favoriteRepo) Delete(ctx context.Context, userID, favoriteUserID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND favorite_user_id = ?", userID, favoriteUserID).
		Delete(&model.Favorite{})
	return res.RowsAffected, res.Error
}

func (r *favoriteRepo) Exists(ctx context.Context, userID, favoriteUserID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("user_id = ? AND favorite_user_id = ?", userID, favoriteUserID).
		Count(&n).Error
	return n > 0, err
}
