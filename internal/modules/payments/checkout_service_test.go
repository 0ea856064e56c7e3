package payments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelboada21/PruebaCVisual/internal/shared/apperr"
)

func validCheckout() CheckoutRequest {
	return CheckoutRequest{
		Items: []LineItem{
			{Name: "Camiseta", UnitAmount: 1000, Quantity: 1, Currency: "usd"},
		},
		SuccessURL: "https://shop.example.com/success",
		CancelURL:  "https://shop.example.com/cancel",
	}
}

func TestCreateSession_Success(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{session: CheckoutSession{ID: "cs_1", URL: "https://checkout.stripe.com/cs_1"}}
	svc := NewCheckoutService(gw, nil)

	sess, err := svc.CreateSession(context.Background(), 7, validCheckout())
	require.NoError(t, err)

	assert.Equal(t, "cs_1", sess.ID)
	assert.Equal(t, "https://checkout.stripe.com/cs_1", sess.URL)
	assert.Equal(t, int64(7), gw.lastInput.UserID, "subject id must be threaded into the session")
	assert.Equal(t, validCheckout().Items, gw.lastInput.Items)
}

func TestCreateSession_ValidationBeforeGateway(t *testing.T) {
	t.Parallel()

	cases := map[string]func(*CheckoutRequest){
		"no items":        func(r *CheckoutRequest) { r.Items = nil },
		"no success url":  func(r *CheckoutRequest) { r.SuccessURL = "" },
		"no cancel url":   func(r *CheckoutRequest) { r.CancelURL = "" },
		"empty item name": func(r *CheckoutRequest) { r.Items[0].Name = "" },
		"zero amount":     func(r *CheckoutRequest) { r.Items[0].UnitAmount = 0 },
		"zero quantity":   func(r *CheckoutRequest) { r.Items[0].Quantity = 0 },
		"no currency":     func(r *CheckoutRequest) { r.Items[0].Currency = "" },
	}
	for name, mutate := range cases {
		gw := &fakeGateway{sessionErr: errGatewayDown}
		svc := NewCheckoutService(gw, nil)

		req := validCheckout()
		mutate(&req)

		_, err := svc.CreateSession(context.Background(), 1, req)
		require.Error(t, err, "case %s", name)

		ae, ok := apperr.As(err)
		require.True(t, ok, "case %s", name)
		assert.Equal(t, apperr.Invalid, ae.Kind, "case %s: gateway must not be called on invalid input", name)
	}
}

func TestCreateSession_GatewayFailure(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{sessionErr: errGatewayDown}
	svc := NewCheckoutService(gw, nil)

	_, err := svc.CreateSession(context.Background(), 1, validCheckout())
	require.Error(t, err)

	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.Internal, ae.Kind)
}
