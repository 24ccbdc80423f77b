package api

import (
	"events-api/internal/middleware"
	"events-api/internal/services"

	"github.com/gin-gonic/gin"
)

// Handlers holds the injected services the route handlers close over. There
// are no package-level client singletons; the composition root in cmd/server
// owns construction and lifecycle.
type Handlers struct {
	Payments    *services.PaymentService
	Tickets     *services.TicketService
	Scans       *services.ScanLimiter
	StaffAPIKey string
}

// SetupRoutes sets up all routes
func SetupRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api")
	{
		// Webhook routes (no auth middleware; lomi authenticates via the
		// signature header, verified against the raw body)
		webhooks := api.Group("/webhooks")
		{
			webhooks.POST("/lomi", h.LomiWebhookHandler)
		}

		// Ticket admission routes (staff scanning clients)
		tickets := api.Group("/tickets")
		tickets.Use(middleware.StaffAuthMiddleware(h.StaffAPIKey))
		{
			tickets.POST("/check-in", h.CheckInTicket)
			tickets.GET("/lookup", h.LookupTicket)
		}
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "events-api",
		})
	})
}
