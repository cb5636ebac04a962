package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateOrderRequest struct {
	DistributorID string             `json:"distributorId" validate:"required,uuid"`
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes         *string            `json:"notes" validate:"omitempty,max=1000"`
	DeliveryMode  string             `json:"deliveryMode" validate:"omitempty,oneof=pickup delivery"`
}

// OrderItemRequest carries the client's view of the price. The server
// resolves the canonical price and only falls back to UnitPrice when the
// distributor has no inventory row and the product has no base price.
type OrderItemRequest struct {
	ProductID string          `json:"productId" validate:"required,uuid"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unitPrice" validate:"gte=0"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type UpdateDeliveryModeRequest struct {
	DeliveryMode string `json:"deliveryMode" validate:"required,oneof=pickup delivery"`
}

type OrderItemResponse struct {
	ID         string           `json:"id"`
	ProductID  string           `json:"productId"`
	Quantity   int              `json:"quantity"`
	UnitPrice  decimal.Decimal  `json:"unitPrice"`
	TotalPrice decimal.Decimal  `json:"totalPrice"`
	Product    *ProductResponse `json:"product,omitempty"`
}

type OrderResponse struct {
	ID            string              `json:"id"`
	OrderNumber   string              `json:"orderNumber"`
	RetailerID    string              `json:"retailerId"`
	DistributorID string              `json:"distributorId"`
	Status        string              `json:"status"`
	DeliveryMode  string              `json:"deliveryMode"`
	TotalAmount   decimal.Decimal     `json:"totalAmount"`
	Notes         *string             `json:"notes"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
	Items         []OrderItemResponse `json:"items,omitempty"`
	Retailer      *PublicUserResponse `json:"retailer,omitempty"`
	Distributor   *PublicUserResponse `json:"distributor,omitempty"`
}

type InvoiceResponse struct {
	ID            string     `json:"id"`
	InvoiceNumber string     `json:"invoiceNumber"`
	OrderID       string     `json:"orderId"`
	PDFURL        *string    `json:"pdfUrl"`
	SentAt        *time.Time `json:"sentAt"`
	CreatedAt     time.Time  `json:"createdAt"`
}
