package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/samuelboada21/PruebaCVisual/internal/http/middleware"
	"github.com/samuelboada21/PruebaCVisual/internal/modules/payments"
	"github.com/samuelboada21/PruebaCVisual/internal/shared/apperr"
)

type PaymentsHandler struct {
	Query *payments.QueryService
}

func NewPaymentsHandler(svc *payments.QueryService) *PaymentsHandler {
	return &PaymentsHandler{Query: svc}
}

type paymentResponse struct {
	ID            int64     `json:"id"`
	OccurredAt    time.Time `json:"occurred_at"`
	TransactionID string    `json:"transaction_id"`
	Status        string    `json:"status"`
	Amount        string    `json:"amount"`
	Bank          string    `json:"bank"`
	PaymentMethod string    `json:"payment_method"`
	UserID        int64     `json:"user_id"`
}

func toPaymentResponse(n payments.PaymentNotification) paymentResponse {
	return paymentResponse{
		ID:            n.ID,
		OccurredAt:    n.OccurredAt,
		TransactionID: n.TransactionID,
		Status:        n.Status,
		Amount:        payments.CentsToDecimal(n.AmountCents),
		Bank:          n.Bank,
		PaymentMethod: n.PaymentMethod,
		UserID:        n.UserID,
	}
}

// GET /webhook/payments
func (h *PaymentsHandler) List(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		middleware.Fail(c, apperr.UnauthorizedErr("authentication required"))
		return
	}

	rows, err := h.Query.List(c.Request.Context(), id)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	out := make([]paymentResponse, 0, len(rows))
	for _, n := range rows {
		out = append(out, toPaymentResponse(n))
	}
	c.JSON(http.StatusOK, out)
}

// GET /webhook/payments/:id
func (h *PaymentsHandler) GetByID(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		middleware.Fail(c, apperr.UnauthorizedErr("authentication required"))
		return
	}

	paymentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("payment id must be an integer", nil))
		return
	}

	n, err := h.Query.GetByID(c.Request.Context(), id, paymentID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, toPaymentResponse(*n))
}
