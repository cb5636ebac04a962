package repository

import (
	"context"

	"auromart/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryRepository interface {
	// Upsert inserts or updates the row keyed on (distributor_id, product_id).
	Upsert(ctx context.Context, inv *model.Inventory) error
	ListByDistributor(ctx context.Context, distributorID uuid.UUID) ([]model.Inventory, error)
	// ListAvailable returns in-stock, available rows of active products with
	// the product joined in.
	ListAvailable(ctx context.Context, categoryID *uuid.UUID) ([]model.Inventory, error)
	Find(ctx context.Context, distributorID, productID uuid.UUID) (*model.Inventory, error)
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryRepository(db *gorm.DB) InventoryRepository { return &inventoryRepo{db: db} }

func (r *inventoryRepo) Upsert(ctx context.Context, inv *model.Inventory) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "distributor_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "selling_price", "is_available", "updated_at"}),
	}).Create(inv).Error
}

func (r *inventoryRepo) ListByDistributor(ctx context.Context, distributorID uuid.UUID) ([]model.Inventory, error) {
	var rows []model.Inventory
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("distributor_id = ?", distributorID).
		Order("updated_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *inventoryRepo) ListAvailable(ctx context.Context, categoryID *uuid.UUID) ([]model.Inventory, error) {
	var rows []model.Inventory
	q := r.db.WithContext(ctx).
		Joins("Product").
		Where("inventory.is_available = ? AND inventory.quantity > 0", true).
		Where(`"Product".is_active = ?`, true)
	if categoryID != nil {
		q = q.Where(`"Product".category_id = ?`, *categoryID)
	}
	err := q.Order(`"Product".name ASC`).Find(&rows).Error
	return rows, err
}

func (r *inventoryRepo) Find(ctx context.Context, distributorID, productID uuid.UUID) (*model.Inventory, error) {
	var inv model.Inventory
	err := r.db.WithContext(ctx).
		Where("distributor_id = ? AND product_id = ?", distributorID, productID).
		First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
