package payments

import (
	"context"
	"errors"
	"fmt"
)

// fakeGateway scripts the three gateway calls for service tests.
type fakeGateway struct {
	verifyErr error
	event     Event

	intents   map[string]PaymentIntent
	intentErr error

	session    CheckoutSession
	sessionErr error
	lastInput  CheckoutInput
}

func (f *fakeGateway) CreateCheckoutSession(_ context.Context, in CheckoutInput) (CheckoutSession, error) {
	f.lastInput = in
	if f.sessionErr != nil {
		return CheckoutSession{}, f.sessionErr
	}
	return f.session, nil
}

func (f *fakeGateway) GetPaymentIntent(_ context.Context, id string) (PaymentIntent, error) {
	if f.intentErr != nil {
		return PaymentIntent{}, f.intentErr
	}
	pi, ok := f.intents[id]
	if !ok {
		return PaymentIntent{}, fmt.Errorf("no such intent %s", id)
	}
	return pi, nil
}

func (f *fakeGateway) VerifyAndParseEvent([]byte, string) (Event, error) {
	if f.verifyErr != nil {
		return Event{}, f.verifyErr
	}
	return f.event, nil
}

// memRepo keeps rows in memory and enforces the transaction-id unique
// constraint the way the store does.
type memRepo struct {
	rows      []PaymentNotification
	nextID    int64
	insertErr error
	listErr   error
}

func newMemRepo() *memRepo { return &memRepo{nextID: 1} }

func (m *memRepo) Insert(_ context.Context, n *PaymentNotification) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	for _, r := range m.rows {
		if r.TransactionID == n.TransactionID {
			return ErrDuplicateTransaction
		}
	}
	n.ID = m.nextID
	m.nextID++
	m.rows = append(m.rows, *n)
	return nil
}

func (m *memRepo) ListAll(context.Context) ([]PaymentNotification, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]PaymentNotification{}, m.rows...), nil
}

func (m *memRepo) ListByUser(_ context.Context, userID int64) ([]PaymentNotification, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []PaymentNotification{}
	for _, r := range m.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRepo) GetByID(_ context.Context, id int64) (*PaymentNotification, error) {
	for _, r := range m.rows {
		if r.ID == id {
			row := r
			return &row, nil
		}
	}
	return nil, ErrNotFound
}

var errGatewayDown = errors.New("gateway unavailable")
