package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"events-api/internal/models"
	"events-api/pkg/logging"

	"github.com/google/uuid"
)

// PaymentStore is the subset of database procedures the webhook flow uses.
type PaymentStore interface {
	RecordLomiPayment(ctx context.Context, p models.RecordPaymentParams) error
	PrepareEmailDispatch(ctx context.Context, purchaseID string) error
	UpdateEmailDispatchStatus(ctx context.Context, purchaseID, status, dispatchErr string) error
	RecordWebhookDelivery(ctx context.Context, delivery *models.WebhookDelivery) error
}

// WebhookOutcome is the HTTP-shaped result of processing a webhook. Err is
// set for the {error} response body, Message for the {received,message} body.
type WebhookOutcome struct {
	StatusCode int
	Message    string
	Err        string
}

// PaymentService processes lomi payment webhooks: verify the signature, parse
// and validate the envelope, classify the event, record the payment through
// the database procedures, and trigger the ticket email for paid purchases.
// It holds no state across invocations; idempotency across provider retries
// belongs to the procedures.
type PaymentService struct {
	store      PaymentStore
	verifier   *SignatureVerifier
	dispatcher EmailDispatcher
}

// NewPaymentService wires the webhook pipeline.
func NewPaymentService(store PaymentStore, verifier *SignatureVerifier, dispatcher EmailDispatcher) *PaymentService {
	return &PaymentService{
		store:      store,
		verifier:   verifier,
		dispatcher: dispatcher,
	}
}

// Process runs the full webhook sequence over a raw request body and its
// signature header. The body is never parsed before the signature check
// passes. Once the payment is durably recorded, no later failure changes the
// 200 response; the provider must not re-send a settled payment.
func (s *PaymentService) Process(ctx context.Context, rawBody []byte, signatureHeader string) *WebhookOutcome {
	if err := s.verifier.Verify(rawBody, signatureHeader); err != nil {
		logging.Errorf("Webhook verification failed: %v", err)
		return &WebhookOutcome{
			StatusCode: http.StatusBadRequest,
			Err:        fmt.Sprintf("Webhook verification failed: %v", err),
		}
	}

	var event models.LomiWebhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		logging.Errorf("Webhook verification failed: unparseable body: %v", err)
		return &WebhookOutcome{
			StatusCode: http.StatusBadRequest,
			Err:        "Webhook verification failed: malformed JSON body",
		}
	}

	if event.Event == "" || event.Data == nil {
		return &WebhookOutcome{
			StatusCode: http.StatusBadRequest,
			Err:        "Event type or data missing.",
		}
	}

	purchaseID := event.Data.Metadata.InternalPurchaseID
	if purchaseID == "" {
		logging.Errorf("Webhook event %s has no metadata.internal_purchase_id", event.Event)
		return &WebhookOutcome{
			StatusCode: http.StatusBadRequest,
			Err:        "metadata.internal_purchase_id is missing from event data.",
		}
	}

	status := models.ClassifyEvent(event.Event)
	sessionID := models.ResolveCheckoutSessionID(event.Event, event.Data)

	delivery := &models.WebhookDelivery{
		DeliveryID:        uuid.NewString(),
		EventType:         event.Event,
		PurchaseID:        purchaseID,
		CheckoutSessionID: sessionID,
		PaymentStatus:     string(status),
	}
	var outcome *WebhookOutcome
	defer func() {
		delivery.ResponseStatus = outcome.StatusCode
		delivery.Error = outcome.Err
		if err := s.store.RecordWebhookDelivery(ctx, delivery); err != nil {
			logging.Errorf("Failed to record webhook delivery %s: %v", delivery.DeliveryID, err)
		}
	}()

	if status == models.StatusUnhandled {
		logging.Infof("Ignoring unhandled event type %s for purchase %s", event.Event, purchaseID)
		outcome = &WebhookOutcome{
			StatusCode: http.StatusOK,
			Message:    fmt.Sprintf("Event type %s not handled.", event.Event),
		}
		return outcome
	}

	paymentID := event.Data.TransactionID
	if paymentID == "" {
		paymentID = event.Data.ID
	}

	amount := event.Data.Amount
	if amount == nil {
		amount = event.Data.GrossAmount
	}

	params := models.RecordPaymentParams{
		PurchaseID:        purchaseID,
		PaymentID:         paymentID,
		CheckoutSessionID: sessionID,
		PaymentStatus:     string(status),
		RawEvent:          rawBody,
		Amount:            amount,
		Currency:          event.Data.CurrencyCode,
	}

	if err := s.store.RecordLomiPayment(ctx, params); err != nil {
		logging.Errorf("Failed to record payment for purchase %s: %v", purchaseID, err)
		outcome = &WebhookOutcome{
			StatusCode: http.StatusInternalServerError,
			Err:        "Failed to record payment.",
		}
		return outcome
	}

	logging.Infof("Recorded payment - purchase: %s, payment: %s, session: %s, status: %s",
		purchaseID, paymentID, sessionID, status)

	if status == models.StatusPaid {
		s.dispatchTicketEmail(ctx, purchaseID)
	}

	outcome = &WebhookOutcome{
		StatusCode: http.StatusOK,
		Message:    "Webhook processed.",
	}
	return outcome
}

// dispatchTicketEmail runs the post-payment side effects: stage the purchase
// for email delivery, then trigger the email function. Every failure in here
// is best-effort; the payment is already durable.
func (s *PaymentService) dispatchTicketEmail(ctx context.Context, purchaseID string) {
	if err := s.store.PrepareEmailDispatch(ctx, purchaseID); err != nil {
		logging.Errorf("Failed to prepare email dispatch for purchase %s: %v", purchaseID, err)
		return
	}

	if err := s.dispatcher.SendTicketEmail(ctx, purchaseID); err != nil {
		logging.Errorf("Ticket email dispatch failed for purchase %s: %v", purchaseID, err)
		if updateErr := s.store.UpdateEmailDispatchStatus(ctx, purchaseID, "FAILED", err.Error()); updateErr != nil {
			logging.Errorf("Failed to mark email dispatch failed for purchase %s: %v", purchaseID, updateErr)
		}
		return
	}

	logging.Infof("Ticket email dispatched for purchase %s", purchaseID)
}
