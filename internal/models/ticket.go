package models

import "time"

// Admission result codes returned by mark_ticket_used.
const (
	MarkResultSuccess       = "SUCCESS"
	MarkResultAlreadyUsed   = "ALREADY_USED"
	MarkResultDuplicateScan = "DUPLICATE_SCAN"
)

// Error codes reported by the ticket admission checker.
const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeVerificationFailed = "VERIFICATION_FAILED"
	CodeTicketNotFound     = "TICKET_NOT_FOUND"
	CodeAlreadyUsed        = "ALREADY_USED"
	CodeDuplicateScan      = "DUPLICATE_SCAN"
	CodeAdmissionFailed    = "ADMISSION_FAILED"
)

// TicketRecord is the row returned by the verify_ticket procedure.
// UseCount/TotalQuantity are present for multi-admission bundles; single-use
// tickets from the legacy model only carry IsUsed.
type TicketRecord struct {
	TicketIdentifier string     `json:"ticket_identifier"`
	CustomerName     string     `json:"customer_name"`
	CustomerEmail    string     `json:"customer_email,omitempty"`
	EventTitle       string     `json:"event_title"`
	EventDate        string     `json:"event_date,omitempty"`
	TicketType       string     `json:"ticket_type,omitempty"`
	IsUsed           *bool      `json:"is_used,omitempty"`
	UsedAt           *time.Time `json:"used_at,omitempty"`
	UseCount         *int       `json:"use_count,omitempty"`
	TotalQuantity    *int       `json:"total_quantity,omitempty"`
}

// CanBeAdmitted computes admissibility: use_count < total_quantity when both
// are present, otherwise !is_used.
func (t *TicketRecord) CanBeAdmitted() bool {
	if t.UseCount != nil && t.TotalQuantity != nil {
		return *t.UseCount < *t.TotalQuantity
	}
	return t.IsUsed == nil || !*t.IsUsed
}

// IsBundle reports whether the ticket uses the multi-admission model.
func (t *TicketRecord) IsBundle() bool {
	return t.UseCount != nil && t.TotalQuantity != nil
}

// AdmissionResult is the structured outcome of a verify-and-admit sequence.
// Success reports whether verification worked; Admitted reports whether the
// ticket was marked used. The two are independent: a fully used ticket
// verifies successfully but is not admitted.
type AdmissionResult struct {
	Success   bool          `json:"success"`
	Admitted  bool          `json:"admitted"`
	ErrorCode string        `json:"error_code,omitempty"`
	Message   string        `json:"message,omitempty"`
	Ticket    *TicketRecord `json:"ticket,omitempty"`
}
