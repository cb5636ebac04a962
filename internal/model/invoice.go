package model

import (
	"time"

	"github.com/google/uuid"
)

// Invoice is one-to-one with an order.
// PDFURL is either a path under PDF_STORAGE_PATH or an s3:// location.
type Invoice struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceNumber string     `gorm:"uniqueIndex;not null"`
	OrderID       uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null"`
	PDFURL        *string    `gorm:"column:pdf_url"`
	SentAt        *time.Time
	CreatedAt     time.Time

	Order *Order `gorm:"foreignKey:OrderID"`
}
