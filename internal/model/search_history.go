package model

import (
	"time"

	"github.com/google/uuid"
)

type SearchType string

const (
	SearchProduct      SearchType = "product"
	SearchManufacturer SearchType = "manufacturer"
	SearchDistributor  SearchType = "distributor"
)

type SearchHistory struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	SearchTerm  string     `gorm:"not null"`
	SearchType  SearchType `gorm:"type:varchar(20);not null"`
	ResultCount int        `gorm:"not null;default:0"`
	CreatedAt   time.Time  `gorm:"index"`
}

func (SearchHistory) TableName() string { return "search_history" }
