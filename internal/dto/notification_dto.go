package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type NotificationResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Message     string     `json:"message"`
	Type        string     `json:"type"`
	IsDelivered bool       `json:"isDelivered"`
	SentAt      *time.Time `json:"sentAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// StatsResponse is recomputed on every call. ActiveDistributors is set for
// retailers only, TotalProducts for manufacturers only.
type StatsResponse struct {
	TotalOrders        int64           `json:"totalOrders"`
	PendingOrders      int64           `json:"pendingOrders"`
	CompletedOrders    int64           `json:"completedOrders"`
	MonthlySpend       decimal.Decimal `json:"monthlySpend"`
	ActiveDistributors *int64          `json:"activeDistributors,omitempty"`
	TotalProducts      *int64          `json:"totalProducts,omitempty"`
}

type RecordSearchRequest struct {
	SearchTerm  string `json:"searchTerm" validate:"required,max=200"`
	SearchType  string `json:"searchType" validate:"required,oneof=product manufacturer distributor"`
	ResultCount int    `json:"resultCount" validate:"min=0"`
}

type SearchHistoryQuery struct {
	Limit int `form:"limit" validate:"omitempty,min=1,max=100"`
}

type SearchHistoryResponse struct {
	ID          string    `json:"id"`
	SearchTerm  string    `json:"searchTerm"`
	SearchType  string    `json:"searchType"`
	ResultCount int       `json:"resultCount"`
	CreatedAt   time.Time `json:"createdAt"`
}
