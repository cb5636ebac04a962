package repository

import (
	"context"

	"auromart/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository interface {
	Create(ctx context.Context, tx *gorm.DB, inv *model.Invoice) error
	NextInvoiceNumber(ctx context.Context, tx *gorm.DB) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*model.Invoice, error)
	Update(ctx context.Context, inv *model.Invoice) error
	DB() *gorm.DB
}

type invoiceRepo struct{ db *gorm.DB }

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository { return &invoiceRepo{db: db} }

func (r *invoiceRepo) DB() *gorm.DB { return r.db }

func (r *invoiceRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *invoiceRepo) Create(ctx context.Context, tx *gorm.DB, inv *model.Invoice) error {
	return r.conn(tx).WithContext(ctx).Create(inv).Error
}

func (r *invoiceRepo) NextInvoiceNumber(ctx context.Context, tx *gorm.DB) (int64, error) {
	var num int64
	err := r.conn(tx).WithContext(ctx).Raw("SELECT nextval('invoice_number_seq')").Scan(&num).Error
	return num, err
}

func (r *invoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.db.WithContext(ctx).First(&inv, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepo) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepo) Update(ctx context.Context, inv *model.Invoice) error {
	return r.db.WithContext(ctx).Save(inv).Error
}
