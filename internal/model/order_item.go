package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is immutable once the order is created. TotalPrice = UnitPrice × Quantity.
type OrderItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
