package api

import (
	"net/http"

	"events-api/internal/models"
	"events-api/internal/response"

	"github.com/gin-gonic/gin"
)

// CheckInRequest represents a ticket check-in request from a scanning client
type CheckInRequest struct {
	TicketID   string `json:"ticket_id"`
	VerifiedBy string `json:"verified_by"`
}

// CheckInTicket verifies a ticket and admits it when valid.
// POST /api/tickets/check-in
func (h *Handlers) CheckInTicket(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, http.StatusBadRequest, response.ErrorWithCode(
			models.CodeInvalidInput, "Invalid request format: "+err.Error()))
		return
	}

	if !h.Scans.Allow(c.Request.Context(), req.VerifiedBy, req.TicketID) {
		response.JSON(c, http.StatusTooManyRequests, response.ErrorWithCode(
			models.CodeDuplicateScan, "Ticket was just scanned, please wait."))
		return
	}

	result := h.Tickets.VerifyAndAdmit(c.Request.Context(), req.TicketID, req.VerifiedBy, true)
	c.JSON(statusForAdmission(result), result)
}

// LookupTicket verifies a ticket without admitting it, so scanner UIs can
// preview attendee and event details before check-in.
// GET /api/tickets/lookup?ticket_id=...
func (h *Handlers) LookupTicket(c *gin.Context) {
	ticketID := c.Query("ticket_id")
	result := h.Tickets.VerifyAndAdmit(c.Request.Context(), ticketID, "", false)
	c.JSON(statusForAdmission(result), result)
}

// statusForAdmission maps admission results onto HTTP status codes. Verified
// tickets always map to 200, whether or not they were admitted.
func statusForAdmission(result *models.AdmissionResult) int {
	if result.Success {
		return http.StatusOK
	}
	switch result.ErrorCode {
	case models.CodeInvalidInput:
		return http.StatusBadRequest
	case models.CodeTicketNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
