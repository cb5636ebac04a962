package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Inventory is a distributor's stock record for one product.
// (DistributorID, ProductID) is unique; writes are upserts on that pair.
type Inventory struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DistributorID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_distributor_product"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_distributor_product"`
	Quantity      int             `gorm:"not null;default:0"`
	SellingPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	IsAvailable   bool            `gorm:"not null"`
	UpdatedAt     time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (Inventory) TableName() string { return "inventory" }
