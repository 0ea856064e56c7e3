package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/samuelboada21/PruebaCVisual/internal/http/middleware"
	"github.com/samuelboada21/PruebaCVisual/internal/http/validation"
	"github.com/samuelboada21/PruebaCVisual/internal/modules/payments"
	"github.com/samuelboada21/PruebaCVisual/internal/shared/apperr"
)

type CheckoutHandler struct {
	Checkout *payments.CheckoutService
}

func NewCheckoutHandler(svc *payments.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{Checkout: svc}
}

type checkoutItemInput struct {
	Name       string `json:"name" binding:"required"`
	UnitAmount int64  `json:"unit_amount" binding:"required,gt=0"`
	Quantity   int64  `json:"quantity" binding:"required,gt=0"`
	Currency   string `json:"currency" binding:"required,len=3"`
}

type checkoutInput struct {
	Items      []checkoutItemInput `json:"items" binding:"required,min=1,dive"`
	SuccessURL string              `json:"success_url" binding:"required,url"`
	CancelURL  string              `json:"cancel_url" binding:"required,url"`
}

// POST /create-checkout-session
func (h *CheckoutHandler) Post(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		middleware.Fail(c, apperr.UnauthorizedErr("authentication required"))
		return
	}

	var in checkoutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("invalid checkout request", validation.FromBindError(err, &in)))
		return
	}

	req := payments.CheckoutRequest{
		SuccessURL: in.SuccessURL,
		CancelURL:  in.CancelURL,
	}
	for _, it := range in.Items {
		req.Items = append(req.Items, payments.LineItem{
			Name:       it.Name,
			UnitAmount: it.UnitAmount,
			Quantity:   it.Quantity,
			Currency:   it.Currency,
		})
	}

	sess, err := h.Checkout.CreateSession(c.Request.Context(), id.UserID, req)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": sess.ID,
		"url":        sess.URL,
	})
}
