package models

import (
	"encoding/json"
	"strings"
)

// PaymentStatus is the normalized outcome derived from a lomi event type.
type PaymentStatus string

const (
	StatusPaid          PaymentStatus = "paid"
	StatusPaymentFailed PaymentStatus = "payment_failed"
	// StatusUnhandled marks event types this service intentionally ignores.
	StatusUnhandled PaymentStatus = "unknown"
)

// LomiWebhookEvent is the verified, parsed lomi webhook payload.
type LomiWebhookEvent struct {
	Event string         `json:"event"`
	Data  *LomiEventData `json:"data"`
}

// LomiEventData carries the fields this service extracts from the provider
// object. Everything else in the payload is passed through untouched as the
// raw event body.
type LomiEventData struct {
	ID            string        `json:"id"`
	TransactionID string        `json:"transaction_id"`
	Amount        *float64      `json:"amount"`
	GrossAmount   *float64      `json:"gross_amount"`
	CurrencyCode  string        `json:"currency_code"`
	Metadata      EventMetadata `json:"metadata"`
}

// EventMetadata links the provider event back to the local purchase record.
type EventMetadata struct {
	InternalPurchaseID string `json:"internal_purchase_id"`
	LinkID             string `json:"linkId"`
}

// eventStatusAliases maps known lomi event types to payment statuses. The
// upper-snake variants exist for compatibility with the older provider
// contract; lookups are lowercased first so only the snake aliases need
// separate entries.
var eventStatusAliases = map[string]PaymentStatus{
	"checkout.completed": StatusPaid,
	"checkout_completed": StatusPaid,
	"payment.succeeded":  StatusPaid,
	"payment_succeeded":  StatusPaid,
	"payment.failed":     StatusPaymentFailed,
	"payment_failed":     StatusPaymentFailed,
}

// ClassifyEvent derives the payment status from a provider event type.
// Unrecognized types return StatusUnhandled and must not be treated as errors.
func ClassifyEvent(event string) PaymentStatus {
	if status, ok := eventStatusAliases[strings.ToLower(event)]; ok {
		return status
	}
	return StatusUnhandled
}

// IsCheckoutEvent reports whether the event is a checkout completion, in
// either the current or the historical upper-case form.
func IsCheckoutEvent(event string) bool {
	switch strings.ToLower(event) {
	case "checkout.completed", "checkout_completed":
		return true
	}
	return false
}

// ResolveCheckoutSessionID returns the logical checkout session id for an
// event. Checkout completions carry it as data.id; the payment lifecycle
// events carry it as metadata.linkId, with data.id as the fallback.
func ResolveCheckoutSessionID(event string, data *LomiEventData) string {
	if IsCheckoutEvent(event) {
		return data.ID
	}
	if data.Metadata.LinkID != "" {
		return data.Metadata.LinkID
	}
	return data.ID
}

// RecordPaymentParams are the inputs to the record_event_lomi_payment
// procedure.
type RecordPaymentParams struct {
	PurchaseID        string
	PaymentID         string
	CheckoutSessionID string
	PaymentStatus     string
	RawEvent          json.RawMessage
	Amount            *float64
	Currency          string
}
