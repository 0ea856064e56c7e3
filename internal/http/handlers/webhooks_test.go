package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/samuelboada21/PruebaCVisual/internal/modules/payments"
)

// scriptedGateway drives the processor to a chosen terminal outcome.
type scriptedGateway struct {
	verifyErr error
	event     payments.Event
	intent    payments.PaymentIntent
	intentErr error
}

func (g *scriptedGateway) CreateCheckoutSession(context.Context, payments.CheckoutInput) (payments.CheckoutSession, error) {
	return payments.CheckoutSession{}, errors.New("not used")
}

func (g *scriptedGateway) GetPaymentIntent(context.Context, string) (payments.PaymentIntent, error) {
	if g.intentErr != nil {
		return payments.PaymentIntent{}, g.intentErr
	}
	return g.intent, nil
}

func (g *scriptedGateway) VerifyAndParseEvent([]byte, string) (payments.Event, error) {
	if g.verifyErr != nil {
		return payments.Event{}, g.verifyErr
	}
	return g.event, nil
}

type scriptedRepo struct {
	insertErr error
	inserted  int
}

func (r *scriptedRepo) Insert(context.Context, *payments.PaymentNotification) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted++
	return nil
}
func (r *scriptedRepo) ListAll(context.Context) ([]payments.PaymentNotification, error) {
	return nil, nil
}
func (r *scriptedRepo) ListByUser(context.Context, int64) ([]payments.PaymentNotification, error) {
	return nil, nil
}
func (r *scriptedRepo) GetByID(context.Context, int64) (*payments.PaymentNotification, error) {
	return nil, payments.ErrNotFound
}

func webhookRouter(gw payments.Gateway, repo payments.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := payments.NewWebhookService(gw, repo, nil, nil)
	h := NewWebhookHandler(nil, svc)

	r := gin.New()
	r.POST("/webhook/payments", h.Handle)
	return r
}

func postWebhook(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook/payments", strings.NewReader("{}"))
	req.Header.Set(SignatureHeader, "t=1,v1=abc")
	r.ServeHTTP(w, req)
	return w
}

func completedEvent() payments.Event {
	return payments.Event{
		Type: payments.EventCheckoutCompleted,
		Session: payments.SessionData{
			ID:              "cs_1",
			PaymentIntentID: "pi_1",
			Metadata:        map[string]string{payments.MetadataUserID: "1"},
		},
	}
}

func TestWebhookHandler_PersistedIs200(t *testing.T) {
	repo := &scriptedRepo{}
	gw := &scriptedGateway{
		event:  completedEvent(),
		intent: payments.PaymentIntent{ID: "pi_1", Status: "succeeded", AmountReceived: 1000, PaymentMethod: "card"},
	}

	w := postWebhook(webhookRouter(gw, repo))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, repo.inserted)
	assert.Contains(t, w.Body.String(), `"received":true`)
}

func TestWebhookHandler_DuplicateIs200(t *testing.T) {
	repo := &scriptedRepo{insertErr: payments.ErrDuplicateTransaction}
	gw := &scriptedGateway{
		event:  completedEvent(),
		intent: payments.PaymentIntent{ID: "pi_1", Status: "succeeded", AmountReceived: 1000},
	}

	w := postWebhook(webhookRouter(gw, repo))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebhookHandler_BadSignatureIs400(t *testing.T) {
	gw := &scriptedGateway{verifyErr: errors.New("hmac mismatch: secret whsec_x")}
	repo := &scriptedRepo{}

	w := postWebhook(webhookRouter(gw, repo))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, repo.inserted)
	// the underlying verification error must not be echoed
	assert.NotContains(t, w.Body.String(), "whsec_x")
}

func TestWebhookHandler_IgnoredTypeIsNeutral400(t *testing.T) {
	gw := &scriptedGateway{event: payments.Event{Type: "payment_intent.succeeded"}}
	repo := &scriptedRepo{}

	w := postWebhook(webhookRouter(gw, repo))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"received":true`)
	assert.Equal(t, 0, repo.inserted)
}

func TestWebhookHandler_StoreFaultIs500(t *testing.T) {
	repo := &scriptedRepo{insertErr: errors.New("db down")}
	gw := &scriptedGateway{
		event:  completedEvent(),
		intent: payments.PaymentIntent{ID: "pi_1", Status: "succeeded", AmountReceived: 1000},
	}

	w := postWebhook(webhookRouter(gw, repo))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
