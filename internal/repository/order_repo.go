package repository

import (
	"context"
	"time"

	"auromart/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStats is the raw aggregate behind the analytics endpoint.
type OrderStats struct {
	Total        int64
	Pending      int64
	Completed    int64
	MonthlySpend decimal.Decimal
}

type OrderRepository interface {
	// Create inserts the order together with its Items.
	Create(ctx context.Context, tx *gorm.DB, o *model.Order) error
	NextOrderNumber(ctx context.Context, tx *gorm.DB) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	// UpdateStatus is conditional on the current status being from.
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, from, to model.OrderStatus) error
	UpdateDeliveryMode(ctx context.Context, tx *gorm.DB, id uuid.UUID, mode model.DeliveryMode) error
	ListByRetailer(ctx context.Context, retailerID uuid.UUID) ([]model.Order, error)
	ListByDistributor(ctx context.Context, distributorID uuid.UUID) ([]model.Order, error)
	ListBetween(ctx context.Context, retailerID, distributorID uuid.UUID) ([]model.Order, error)
	// Stats aggregates orders where the user is the retailer (asRetailer) or
	// the distributor. MonthlySpend only counts orders created at or after since.
	Stats(ctx context.Context, userID uuid.UUID, asRetailer bool, since time.Time) (*OrderStats, error)
	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) DB() *gorm.DB { return r.db }

func (r *orderRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *orderRepo) Create(ctx context.Context, tx *gorm.DB, o *model.Order) error {
	return r.conn(tx).WithContext(ctx).Create(o).Error
}

func (r *orderRepo) NextOrderNumber(ctx context.Context, tx *gorm.DB) (int64, error) {
	var num int64
	err := r.conn(tx).WithContext(ctx).Raw("SELECT nextval('order_number_seq')").Scan(&num).Error
	return num, err
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Preload("Retailer").
		Preload("Distributor").
		First(&o, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, from, to model.OrderStatus) error {
	res := r.conn(tx).WithContext(ctx).Model(&model.Order{}).
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

func (r *orderRepo) UpdateDeliveryMode(ctx context.Context, tx *gorm.DB, id uuid.UUID, mode model.DeliveryMode) error {
	return r.conn(tx).WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Updates(map[string]any{"delivery_mode": mode, "updated_at": time.Now()}).Error
}

func (r *orderRepo) ListByRetailer(ctx context.Context, retailerID uuid.UUID) ([]model.Order, error) {
	return r.list(ctx, r.db.Where("retailer_id = ?", retailerID))
}

func (r *orderRepo) ListByDistributor(ctx context.Context, distributorID uuid.UUID) ([]model.Order, error) {
	return r.list(ctx, r.db.Where("distributor_id = ?", distributorID))
}

func (r *orderRepo) ListBetween(ctx context.Context, retailerID, distributorID uuid.UUID) ([]model.Order, error) {
	return r.list(ctx, r.db.Where("retailer_id = ? AND distributor_id = ?", retailerID, distributorID))
}

func (r *orderRepo) list(ctx context.Context, q *gorm.DB) ([]model.Order, error) {
	var orders []model.Order
	err := q.WithContext(ctx).
		Preload("Retailer").
		Preload("Distributor").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) Stats(ctx context.Context, userID uuid.UUID, asRetailer bool, since time.Time) (*OrderStats, error) {
	column := "distributor_id"
	if asRetailer {
		column = "retailer_id"
	}
	var row struct {
		Total        int64
		Pending      int64
		Completed    int64
		MonthlySpend decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select(`COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = ?) AS pending,
			COUNT(*) FILTER (WHERE status = ?) AS completed,
			COALESCE(SUM(total_amount) FILTER (WHERE created_at >= ?), 0) AS monthly_spend`,
			model.OrderPending, model.OrderDelivered, since).
		Where(column+" = ?", userID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &OrderStats{
		Total:        row.Total,
		Pending:      row.Pending,
		Completed:    row.Completed,
		MonthlySpend: row.MonthlySpend,
	}, nil
}
