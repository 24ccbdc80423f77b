package services

import (
	"context"
	"strings"

	"events-api/internal/models"
	"events-api/pkg/logging"
)

// TicketStore is the subset of database procedures the admission flow uses.
type TicketStore interface {
	VerifyTicket(ctx context.Context, ticketID string) (*models.TicketRecord, error)
	MarkTicketUsed(ctx context.Context, ticketID, verifiedBy string) (string, error)
}

// TicketService performs the verify-then-admit sequence for scanned tickets.
// At most two procedure calls per invocation; concurrent-scan safety is the
// mark_ticket_used procedure's responsibility.
type TicketService struct {
	store TicketStore
}

// NewTicketService creates the admission checker.
func NewTicketService(store TicketStore) *TicketService {
	return &TicketService{store: store}
}

// VerifyAndAdmit verifies a ticket identifier and, when the ticket is
// admissible and autoAdmit is set, marks one use. Verification success and
// admission are reported independently in the result.
func (s *TicketService) VerifyAndAdmit(ctx context.Context, ticketID, verifiedBy string, autoAdmit bool) *models.AdmissionResult {
	id := strings.TrimSpace(ticketID)
	if id == "" {
		return &models.AdmissionResult{
			ErrorCode: models.CodeInvalidInput,
			Message:   "Ticket identifier is required.",
		}
	}

	ticket, err := s.store.VerifyTicket(ctx, id)
	if err != nil {
		logging.Errorf("Ticket verification failed for %s: %v", id, err)
		return &models.AdmissionResult{
			ErrorCode: models.CodeVerificationFailed,
			Message:   "Could not verify ticket.",
		}
	}
	if ticket == nil {
		return &models.AdmissionResult{
			ErrorCode: models.CodeTicketNotFound,
			Message:   "No ticket found for this identifier.",
		}
	}

	if !ticket.CanBeAdmitted() {
		message := "Ticket has already been used."
		if ticket.IsBundle() {
			message = "All admissions for this ticket bundle have been used."
		}
		return &models.AdmissionResult{
			Success:   true,
			ErrorCode: models.CodeAlreadyUsed,
			Message:   message,
			Ticket:    ticket,
		}
	}

	if !autoAdmit {
		return &models.AdmissionResult{
			Success: true,
			Message: "Ticket is valid for admission.",
			Ticket:  ticket,
		}
	}

	code, err := s.store.MarkTicketUsed(ctx, id, verifiedBy)
	if err != nil {
		logging.Errorf("Failed to mark ticket %s used: %v", id, err)
		return &models.AdmissionResult{
			Success:   true,
			ErrorCode: models.CodeAdmissionFailed,
			Message:   "Ticket is valid but could not be admitted.",
			Ticket:    ticket,
		}
	}

	switch code {
	case models.MarkResultSuccess:
		logging.Infof("Admitted ticket %s (verified by %s)", id, verifiedBy)
		return &models.AdmissionResult{
			Success:  true,
			Admitted: true,
			Message:  "Ticket admitted.",
			Ticket:   ticket,
		}
	case models.MarkResultAlreadyUsed:
		// Lost the race against a concurrent scan.
		return &models.AdmissionResult{
			Success:   true,
			ErrorCode: models.CodeAlreadyUsed,
			Message:   "Ticket was admitted by another scan.",
			Ticket:    ticket,
		}
	case models.MarkResultDuplicateScan:
		return &models.AdmissionResult{
			Success:   true,
			ErrorCode: models.CodeDuplicateScan,
			Message:   "Ticket was already scanned moments ago.",
			Ticket:    ticket,
		}
	default:
		logging.Errorf("Unexpected admission result %q for ticket %s", code, id)
		return &models.AdmissionResult{
			Success:   true,
			ErrorCode: models.CodeAdmissionFailed,
			Message:   "Ticket is valid but could not be admitted.",
			Ticket:    ticket,
		}
	}
}
