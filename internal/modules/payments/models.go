package payments

import "time"

const (
	// BankLabel is the payment-rail label stored on every notification.
	BankLabel = "Stripe"

	// UnknownPaymentMethod is stored when the gateway omits the method used.
	UnknownPaymentMethod = "unknown"
)

// PaymentNotification is the normalized record of one completed payment.
// Rows are insert-only; TransactionID carries the store-level unique
// constraint that makes ingestion idempotent.
type PaymentNotification struct {
	ID            int64
	OccurredAt    time.Time
	TransactionID string
	Status        string
	AmountCents   int64
	Bank          string
	PaymentMethod string
	UserID        int64
}
