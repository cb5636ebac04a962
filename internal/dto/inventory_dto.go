package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type UpsertInventoryRequest struct {
	ProductID    string          `json:"productId" validate:"required,uuid"`
	Quantity     int             `json:"quantity" validate:"min=0"`
	SellingPrice decimal.Decimal `json:"sellingPrice" validate:"required,gt=0"`
	IsAvailable  *bool           `json:"isAvailable"`
}

type InventoryResponse struct {
	ID            string           `json:"id"`
	DistributorID string           `json:"distributorId"`
	ProductID     string           `json:"productId"`
	Quantity      int              `json:"quantity"`
	SellingPrice  decimal.Decimal  `json:"sellingPrice"`
	IsAvailable   bool             `json:"isAvailable"`
	UpdatedAt     time.Time        `json:"updatedAt"`
	Product       *ProductResponse `json:"product,omitempty"`
}
