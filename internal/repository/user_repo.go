package repository

import (
	"context"
	"strings"

	"auromart/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, u *model.User) error
	// ListActiveByRoles returns active users holding one of roles, minus
	// excludeIDs. A non-empty search matches business name, email, first or
	// last name, case-insensitively.
	ListActiveByRoles(ctx context.Context, roles []model.Role, excludeIDs []uuid.UUID, search string) ([]model.User, error)
	CountActiveByRole(ctx context.Context, role model.Role) (int64, error)
}

type userRepo struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepo{db: db} }

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Update(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *userRepo) ListActiveByRoles(ctx context.Context, roles []model.Role, excludeIDs []uuid.UUID, search string) ([]model.User, error) {
	var users []model.User
	if len(roles) == 0 {
		return users, nil
	}
	q := r.db.WithContext(ctx).Where("is_active = ? AND role IN ?", true, roles)
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + search + "%"
		q = q.Where("business_name ILIKE ? OR email ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?",
			like, like, like, like)
	}
	err := q.Order("created_at ASC").Find(&users).Error
	return users, err
}

func (r *userRepo) CountActiveByRole(ctx context.Context, role model.Role) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("is_active = ? AND role = ?", true, role).
		Count(&n).Error
	return n, err
}
