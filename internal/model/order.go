package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderConfirmed      OrderStatus = "confirmed"
	OrderPacked         OrderStatus = "packed"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

// orderTransitions lists the legal successors of every status.
// delivered and cancelled are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:        {OrderConfirmed, OrderCancelled},
	OrderConfirmed:      {OrderPacked, OrderCancelled},
	OrderPacked:         {OrderOutForDelivery, OrderCancelled},
	OrderOutForDelivery: {OrderDelivered},
	OrderDelivered:      nil,
	OrderCancelled:      nil,
}

func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

func (s OrderStatus) IsTerminal() bool {
	return s.Valid() && len(orderTransitions[s]) == 0
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, candidate := range orderTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

type DeliveryMode string

const (
	DeliveryPickup   DeliveryMode = "pickup"
	DeliveryDelivery DeliveryMode = "delivery"
)

func (m DeliveryMode) Valid() bool {
	return m == DeliveryPickup || m == DeliveryDelivery
}

// Order is placed by a retailer against one distributor.
// TotalAmount is stored at creation and never recomputed.
type Order struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderNumber   string          `gorm:"uniqueIndex;not null"`
	RetailerID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	DistributorID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Status        OrderStatus     `gorm:"type:varchar(20);index;not null;default:'pending'"`
	DeliveryMode  DeliveryMode    `gorm:"type:varchar(20);not null;default:'delivery'"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Notes         *string
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time

	Items       []OrderItem `gorm:"foreignKey:OrderID"`
	Retailer    *User       `gorm:"foreignKey:RetailerID"`
	Distributor *User       `gorm:"foreignKey:DistributorID"`
}
