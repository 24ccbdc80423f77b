package api

import (
	"net/http"

	"events-api/pkg/logging"

	"github.com/gin-gonic/gin"
)

// LomiWebhookHandler receives payment event notifications from lomi.
// POST /api/webhooks/lomi
//
// One handler serves every lomi event type; the runtime-specific parts (raw
// body read, header lookup) happen here and everything else is delegated to
// the payment service.
func (h *Handlers) LomiWebhookHandler(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		logging.Errorf("Failed to read webhook request body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Webhook verification failed: unreadable request body",
		})
		return
	}

	signature := c.GetHeader("X-Lomi-Signature")

	outcome := h.Payments.Process(c.Request.Context(), body, signature)
	if outcome.Err != "" {
		c.JSON(outcome.StatusCode, gin.H{"error": outcome.Err})
		return
	}

	c.JSON(outcome.StatusCode, gin.H{
		"received": true,
		"message":  outcome.Message,
	})
}
