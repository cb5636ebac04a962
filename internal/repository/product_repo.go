package repository

import (
	"context"

	"auromart/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	// Search matches term case-insensitively against name, description and SKU
	// of active products.
	Search(ctx context.Context, term string, categoryID *uuid.UUID) ([]model.Product, error)
	CountByManufacturer(ctx context.Context, manufacturerID uuid.UUID) (int64, error)
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) Search(ctx context.Context, term string, categoryID *uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	like := "%" + term + "%"
	q := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("name ILIKE ? OR description ILIKE ? OR sku ILIKE ?", like, like, like)
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	err := q.Order("name ASC").Limit(100).Find(&products).Error
	return products, err
}

func (r *productRepo) CountByManufacturer(ctx context.Context, manufacturerID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("manufacturer_id = ?", manufacturerID).
		Count(&n).Error
	return n, err
}
