package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationOrderPlaced         NotificationType = "order_placed"
	NotificationOrderStatusUpdate   NotificationType = "order_status_update"
	NotificationDeliveryUpdate      NotificationType = "delivery_update"
	NotificationInvoiceSent         NotificationType = "invoice_sent"
	NotificationPartnershipRequest  NotificationType = "partnership_request"
	NotificationPartnershipResponse NotificationType = "partnership_response"
	NotificationGeneral             NotificationType = "general"
)

// Notification is an append-only outbound message. Only IsDelivered and
// SentAt change after insert.
type Notification struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID        `gorm:"type:uuid;index;not null"`
	Message     string           `gorm:"type:text;not null"`
	Type        NotificationType `gorm:"type:varchar(30);not null"`
	IsDelivered bool             `gorm:"not null;default:false;index"`
	SentAt      *time.Time
	CreatedAt   time.Time
}
