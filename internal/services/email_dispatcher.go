package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// EmailDispatcher triggers the external send-ticket-email function for a paid
// purchase.
type EmailDispatcher interface {
	SendTicketEmail(ctx context.Context, purchaseID string) error
}

// TicketEmailDispatcher calls the send-ticket-email function over HTTP with a
// bearer credential. The client timeout bounds the call so the webhook
// handler can capture a failure before responding.
type TicketEmailDispatcher struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewTicketEmailDispatcher creates a dispatcher for the given function
// endpoint and credential.
func NewTicketEmailDispatcher(endpoint, apiKey string, timeout time.Duration) *TicketEmailDispatcher {
	return &TicketEmailDispatcher{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type sendTicketEmailRequest struct {
	PurchaseID string `json:"purchase_id"`
}

// SendTicketEmail asks the email function to deliver the ticket/receipt email
// for a purchase. Any non-2xx response is an error.
func (d *TicketEmailDispatcher) SendTicketEmail(ctx context.Context, purchaseID string) error {
	jsonData, err := json.Marshal(sendTicketEmailRequest{PurchaseID: purchaseID})
	if err != nil {
		return fmt.Errorf("failed to marshal email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+d.apiKey)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call email function: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("email function returned status %d", resp.StatusCode)
	}

	return nil
}
