package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is created by a manufacturer and stocked by distributors through Inventory.
type Product struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name           string    `gorm:"index;not null"`
	Description    *string
	SKU            string          `gorm:"column:sku;uniqueIndex;not null"`
	CategoryID     *uuid.UUID      `gorm:"type:uuid;index"`
	ManufacturerID uuid.UUID       `gorm:"type:uuid;index;not null"`
	BasePrice      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ImageURL       *string         `gorm:"column:image_url"`
	IsActive       bool            `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Category     *Category `gorm:"foreignKey:CategoryID"`
	Manufacturer *User     `gorm:"foreignKey:ManufacturerID"`
}
