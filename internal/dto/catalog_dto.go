package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description *string         `json:"description" validate:"omitempty,max=2000"`
	SKU         string          `json:"sku" validate:"required,max=64"`
	CategoryID  *string         `json:"categoryId" validate:"omitempty,uuid"`
	BasePrice   decimal.Decimal `json:"basePrice" validate:"required,gt=0"`
	ImageURL    *string         `json:"imageUrl" validate:"omitempty,url"`
}

type ProductResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    *string         `json:"description"`
	SKU            string          `json:"sku"`
	CategoryID     *string         `json:"categoryId"`
	ManufacturerID string          `json:"manufacturerId"`
	BasePrice      decimal.Decimal `json:"basePrice"`
	ImageURL       *string         `json:"imageUrl"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// AvailableProductResponse is a product as offered by one distributor.
type AvailableProductResponse struct {
	ProductResponse
	DistributorID string          `json:"distributorId"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	Quantity      int             `json:"quantity"`
}

type ProductFilter struct {
	CategoryID string `form:"categoryId" validate:"omitempty,uuid"`
}

type ProductSearchQuery struct {
	Q          string `form:"q" validate:"required,min=1,max=100"`
	CategoryID string `form:"categoryId" validate:"omitempty,uuid"`
}
