package database

import (
	"context"
	"fmt"

	"events-api/internal/models"

	"gorm.io/gorm"
)

// Store invokes the database's stored procedures. All transactional
// guarantees (payment idempotency, double-admission prevention) live in the
// procedures themselves; Store issues exactly one call per invariant and does
// no local locking or retrying.
type Store struct {
	db *gorm.DB
}

// NewStore creates a procedure client over an existing connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// RecordLomiPayment records a payment outcome against a purchase via
// record_event_lomi_payment. Safe to call more than once for the same event;
// the procedure deduplicates.
func (s *Store) RecordLomiPayment(ctx context.Context, p models.RecordPaymentParams) error {
	var amount interface{}
	if p.Amount != nil {
		amount = *p.Amount
	}
	err := s.db.WithContext(ctx).Exec(
		"SELECT record_event_lomi_payment(?, ?, ?, ?, ?, ?, ?)",
		p.PurchaseID, p.PaymentID, p.CheckoutSessionID, p.PaymentStatus,
		string(p.RawEvent), amount, p.Currency,
	).Error
	if err != nil {
		return fmt.Errorf("record_event_lomi_payment failed: %w", err)
	}
	return nil
}

// PrepareEmailDispatch stages a paid purchase for receipt/ticket email
// delivery via prepare_purchase_for_email_dispatch.
func (s *Store) PrepareEmailDispatch(ctx context.Context, purchaseID string) error {
	err := s.db.WithContext(ctx).Exec(
		"SELECT prepare_purchase_for_email_dispatch(?)", purchaseID,
	).Error
	if err != nil {
		return fmt.Errorf("prepare_purchase_for_email_dispatch failed: %w", err)
	}
	return nil
}

// UpdateEmailDispatchStatus records the outcome of an email dispatch attempt
// via update_email_dispatch_status.
func (s *Store) UpdateEmailDispatchStatus(ctx context.Context, purchaseID, status, dispatchErr string) error {
	var errArg interface{}
	if dispatchErr != "" {
		errArg = dispatchErr
	}
	err := s.db.WithContext(ctx).Exec(
		"SELECT update_email_dispatch_status(?, ?, ?)", purchaseID, status, errArg,
	).Error
	if err != nil {
		return fmt.Errorf("update_email_dispatch_status failed: %w", err)
	}
	return nil
}

// VerifyTicket looks up a ticket via verify_ticket. Returns (nil, nil) when
// no matching ticket exists.
func (s *Store) VerifyTicket(ctx context.Context, ticketID string) (*models.TicketRecord, error) {
	var record models.TicketRecord
	result := s.db.WithContext(ctx).Raw(
		"SELECT * FROM verify_ticket(?)", ticketID,
	).Scan(&record)
	if result.Error != nil {
		return nil, fmt.Errorf("verify_ticket failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &record, nil
}

// MarkTicketUsed atomically admits a ticket via mark_ticket_used and returns
// the procedure's result code. The procedure is responsible for concurrent
// scan safety.
func (s *Store) MarkTicketUsed(ctx context.Context, ticketID, verifiedBy string) (string, error) {
	var result string
	err := s.db.WithContext(ctx).Raw(
		"SELECT mark_ticket_used(?, ?)", ticketID, verifiedBy,
	).Scan(&result).Error
	if err != nil {
		return "", fmt.Errorf("mark_ticket_used failed: %w", err)
	}
	return result, nil
}

// RecordWebhookDelivery persists a webhook audit row. Best-effort only.
func (s *Store) RecordWebhookDelivery(ctx context.Context, delivery *models.WebhookDelivery) error {
	return s.db.WithContext(ctx).Create(delivery).Error
}
