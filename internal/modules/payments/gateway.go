package payments

import "context"

// EventCheckoutCompleted is the single canonical ingestion trigger. It is the
// only event type whose session object carries the subject-id metadata needed
// to resolve ownership; payment_intent.succeeded does not and is ignored like
// any other type.
const EventCheckoutCompleted = "checkout.session.completed"

// MetadataUserID is the session metadata key the checkout initiator writes and
// the webhook processor reads back.
const MetadataUserID = "user_id"

type LineItem struct {
	Name       string
	UnitAmount int64 // minor currency units
	Quantity   int64
	Currency   string
}

type CheckoutInput struct {
	Items      []LineItem
	SuccessURL string
	CancelURL  string
	UserID     int64 // threaded through session metadata
}

type CheckoutSession struct {
	ID  string
	URL string
}

type SessionData struct {
	ID              string
	PaymentIntentID string
	Metadata        map[string]string
}

// Event is a signature-verified, normalized webhook event. Session is only
// populated for EventCheckoutCompleted.
type Event struct {
	Type    string
	Session SessionData
}

type PaymentIntent struct {
	ID             string
	Status         string
	AmountReceived int64 // minor currency units
	PaymentMethod  string
}

// Gateway: verify signature + parse event, plus the two outbound calls.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, in CheckoutInput) (CheckoutSession, error)
	GetPaymentIntent(ctx context.Context, id string) (PaymentIntent, error)
	VerifyAndParseEvent(body []byte, sigHeader string) (Event, error)
}
