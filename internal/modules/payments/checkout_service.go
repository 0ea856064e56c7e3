package payments

import (
	"context"
	"log/slog"

	"github.com/samuelboada21/PruebaCVisual/internal/shared/apperr"
)

type CheckoutService struct {
	gateway Gateway
	logger  *slog.Logger
}

func NewCheckoutService(gateway Gateway, logger *slog.Logger) *CheckoutService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckoutService{gateway: gateway, logger: logger}
}

type CheckoutRequest struct {
	Items      []LineItem
	SuccessURL string
	CancelURL  string
}

// CreateSession validates the request fully before any gateway call; a failed
// gateway call needs no compensation because no local state is written.
func (s *CheckoutService) CreateSession(ctx context.Context, userID int64, req CheckoutRequest) (CheckoutSession, error) {
	if fields := validateCheckout(req); len(fields) > 0 {
		return CheckoutSession{}, apperr.InvalidErr("invalid checkout request", fields)
	}

	sess, err := s.gateway.CreateCheckoutSession(ctx, CheckoutInput{
		Items:      req.Items,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
		UserID:     userID,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "checkout session create failed", "user_id", userID, "err", err)
		return CheckoutSession{}, apperr.Wrap(err)
	}

	s.logger.InfoContext(ctx, "checkout session created", "user_id", userID, "session_id", sess.ID)
	return sess, nil
}

func validateCheckout(req CheckoutRequest) map[string]string {
	fields := map[string]string{}

	if len(req.Items) == 0 {
		fields["items"] = "at least one line item is required"
	}
	for _, it := range req.Items {
		if it.Name == "" {
			fields["items"] = "line item name is required"
		}
		if it.UnitAmount <= 0 {
			fields["items"] = "line item unit_amount must be positive"
		}
		if it.Quantity <= 0 {
			fields["items"] = "line item quantity must be positive"
		}
		if it.Currency == "" {
			fields["items"] = "line item currency is required"
		}
	}
	if req.SuccessURL == "" {
		fields["success_url"] = "success_url is required"
	}
	if req.CancelURL == "" {
		fields["cancel_url"] = "cancel_url is required"
	}

	return fields
}
