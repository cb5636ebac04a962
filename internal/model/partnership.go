package model

import (
	"time"

	"github.com/google/uuid"
)

type PartnershipStatus string

const (
	PartnershipPending  PartnershipStatus = "pending"
	PartnershipApproved PartnershipStatus = "approved"
	PartnershipRejected PartnershipStatus = "rejected"
)

type PartnershipType string

const (
	PartnershipSupplier    PartnershipType = "supplier"
	PartnershipDistributor PartnershipType = "distributor"
	PartnershipRetailer    PartnershipType = "retailer"
)

func (t PartnershipType) Valid() bool {
	return t == PartnershipSupplier || t == PartnershipDistributor || t == PartnershipRetailer
}

// Partnership is a directed edge requester → partner.
// No uniqueness on the pair: repeated requests insert new rows.
type Partnership struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequesterID     uuid.UUID         `gorm:"type:uuid;index;not null"`
	PartnerID       uuid.UUID         `gorm:"type:uuid;index;not null"`
	Status          PartnershipStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	PartnershipType PartnershipType   `gorm:"type:varchar(20);not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Requester *User `gorm:"foreignKey:RequesterID"`
	Partner   *User `gorm:"foreignKey:PartnerID"`
}
