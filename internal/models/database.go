package models

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel provides common fields for all database models
type BaseModel struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// WebhookDelivery is the audit row recorded for each webhook that reached the
// processing pipeline. It is written best-effort and never influences the
// response returned to the provider; purchase state itself lives behind the
// database procedures, not here.
type WebhookDelivery struct {
	BaseModel
	DeliveryID        string `json:"delivery_id" gorm:"size:36;uniqueIndex;not null"`
	EventType         string `json:"event_type" gorm:"size:100;index"`
	PurchaseID        string `json:"purchase_id" gorm:"size:100;index"`
	CheckoutSessionID string `json:"checkout_session_id" gorm:"size:100"`
	PaymentStatus     string `json:"payment_status" gorm:"size:30"`
	ResponseStatus    int    `json:"response_status"`
	Error             string `json:"error" gorm:"type:text"`
}
