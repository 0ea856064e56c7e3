package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/samuelboada21/PruebaCVisual/internal/modules/payments"
)

// SignatureHeader is the gateway's signature header on webhook deliveries.
const SignatureHeader = "Stripe-Signature"

type WebhookHandler struct {
	Logger    *slog.Logger
	Processor *payments.WebhookService
}

func NewWebhookHandler(logger *slog.Logger, processor *payments.WebhookService) *WebhookHandler {
	return &WebhookHandler{Logger: logger, Processor: processor}
}

// POST /webhook/payments
//
// The processor returns a transport-free outcome; only this handler knows the
// status-code contract. A duplicate delivery is a 200 so the gateway stops
// redelivering; a fault is a 500 so it retries.
func (h *WebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	out := h.Processor.Process(c.Request.Context(), body, c.GetHeader(SignatureHeader))

	switch out.Kind {
	case payments.OutcomePersisted, payments.OutcomeDuplicate:
		c.JSON(http.StatusOK, gin.H{"received": true})
	case payments.OutcomeIgnored:
		// authentic but not an ingestion trigger; neutral response
		c.JSON(http.StatusBadRequest, gin.H{"received": true})
	case payments.OutcomeRejected:
		c.JSON(http.StatusBadRequest, gin.H{"error": out.Detail})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "event processing failed"})
	}
}
