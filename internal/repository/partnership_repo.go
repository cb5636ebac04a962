package repository

import (
	"context"
	"time"

	"auromart/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PartnershipRepository interface {
	Create(ctx context.Context, tx *gorm.DB, p *model.Partnership) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Partnership, error)
	// UpdateStatus moves the row from one status to another. It returns
	// ErrStaleStatus when the row is no longer in from.
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, from, to model.PartnershipStatus) error
	ListApprovedByRequester(ctx context.Context, requesterID uuid.UUID) ([]model.Partnership, error)
	ListByPartner(ctx context.Context, partnerID uuid.UUID) ([]model.Partnership, error)
	// PartnerIDsOf returns the partner of every row the user authored,
	// whatever its status.
	PartnerIDsOf(ctx context.Context, requesterID uuid.UUID) ([]uuid.UUID, error)
	DB() *gorm.DB
}

type partnershipRepo struct{ db *gorm.DB }

func NewPartnershipRepository(db *gorm.DB) PartnershipRepository {
	return &partnershipRepo{db: db}
}

func (r *partnershipRepo) DB() *gorm.DB { return r.db }

func (r *partnershipRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *partnershipRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Partnership) error {
	return r.conn(tx).WithContext(ctx).Create(p).Error
}

func (r *partnershipRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Partnership, error) {
	var p model.Partnership
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *partnershipRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, from, to model.PartnershipStatus) error {
	res := r.conn(tx).WithContext(ctx).Model(&model.Partnership{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{"status": to, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleStatus
	}
	return nil
}

func (r *partnershipRepo) ListApprovedByRequester(ctx context.Context, requesterID uuid.UUID) ([]model.Partnership, error) {
	var rows []model.Partnership
	err := r.db.WithContext(ctx).
		Preload("Partner").
		Where("requester_id = ? AND status = ?", requesterID, model.PartnershipApproved).
		Order("updated_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *partnershipRepo) ListByPartner(ctx context.Context, partnerID uuid.UUID) ([]model.Partnership, error) {
	var rows []model.Partnership
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Where("partner_id = ?", partnerID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *partnershipRepo) PartnerIDsOf(ctx context.Context, requesterID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.Partnership{}).
		Where("requester_id = ?", requesterID).
		Distinct().
		Pluck("partner_id", &ids).Error
	return ids, err
}
