package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

type OutcomeKind string

const (
	// OutcomePersisted: a new notification row was written.
	OutcomePersisted OutcomeKind = "persisted"
	// OutcomeDuplicate: the transaction id already exists. Redelivery of an
	// event we already ingested is a success, not an error.
	OutcomeDuplicate OutcomeKind = "duplicate"
	// OutcomeIgnored: an authentic event of a type this service does not
	// ingest.
	OutcomeIgnored OutcomeKind = "ignored"
	// OutcomeRejected: the delivery is permanently unprocessable (bad
	// signature, missing subject, nothing received).
	OutcomeRejected OutcomeKind = "rejected"
	// OutcomeFault: a dependency failed; the gateway should redeliver.
	OutcomeFault OutcomeKind = "fault"
)

// Outcome is the transport-free result of processing one webhook delivery.
// The HTTP handler owns the mapping to status codes.
type Outcome struct {
	Kind         OutcomeKind
	Detail       string
	Notification *PaymentNotification
}

type WebhookService struct {
	gateway Gateway
	repo    Repository
	txlog   *TxLog
	logger  *slog.Logger
}

func NewWebhookService(gateway Gateway, repo Repository, txlog *TxLog, logger *slog.Logger) *WebhookService {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookService{gateway: gateway, repo: repo, txlog: txlog, logger: logger}
}

// Process runs one delivery through the ingestion pipeline:
// signature verify -> type dispatch -> subject resolution -> intent fetch ->
// persist. Any step can terminate it; every terminal outcome is recorded in
// the transaction log.
func (s *WebhookService) Process(ctx context.Context, body []byte, sigHeader string) Outcome {
	ev, err := s.gateway.VerifyAndParseEvent(body, sigHeader)
	if err != nil {
		// The verification error stays in the logs; callers only ever see
		// the neutral detail.
		s.logger.WarnContext(ctx, "webhook signature verification failed", "err", err)
		return s.record(ctx, Outcome{Kind: OutcomeRejected, Detail: "signature verification failed"})
	}

	if ev.Type != EventCheckoutCompleted {
		return s.record(ctx, Outcome{Kind: OutcomeIgnored, Detail: "ignored event type " + ev.Type})
	}

	userID, err := subjectFromSession(ev.Session)
	if err != nil {
		// Without an owner the record would be anonymous forever; this is a
		// permanent rejection, not something redelivery can fix.
		return s.record(ctx, Outcome{
			Kind:   OutcomeRejected,
			Detail: fmt.Sprintf("session %s: %v", ev.Session.ID, err),
		})
	}

	if ev.Session.PaymentIntentID == "" {
		return s.record(ctx, Outcome{
			Kind:   OutcomeRejected,
			Detail: fmt.Sprintf("session %s has no payment intent", ev.Session.ID),
		})
	}

	// Amounts and status come from the authoritative intent record, never
	// from the event payload.
	intent, err := s.gateway.GetPaymentIntent(ctx, ev.Session.PaymentIntentID)
	if err != nil {
		s.logger.ErrorContext(ctx, "payment intent fetch failed",
			"payment_intent_id", ev.Session.PaymentIntentID, "err", err)
		return s.record(ctx, Outcome{
			Kind:   OutcomeFault,
			Detail: fmt.Sprintf("payment intent %s fetch failed", ev.Session.PaymentIntentID),
		})
	}

	// Delayed payment methods complete the session before funds arrive, so
	// the intent can report a zero amount. Nothing has been received, so
	// there is nothing to record.
	if intent.AmountReceived <= 0 {
		return s.record(ctx, Outcome{
			Kind:   OutcomeRejected,
			Detail: fmt.Sprintf("payment %s has non-positive amount %d", intent.ID, intent.AmountReceived),
		})
	}

	n := &PaymentNotification{
		OccurredAt:    time.Now().UTC(),
		TransactionID: intent.ID,
		Status:        intent.Status,
		AmountCents:   intent.AmountReceived,
		Bank:          BankLabel,
		PaymentMethod: intent.PaymentMethod,
		UserID:        userID,
	}

	if err := s.repo.Insert(ctx, n); err != nil {
		if errors.Is(err, ErrDuplicateTransaction) {
			return s.record(ctx, Outcome{
				Kind:         OutcomeDuplicate,
				Detail:       fmt.Sprintf("payment %s already recorded", intent.ID),
				Notification: n,
			})
		}
		s.logger.ErrorContext(ctx, "payment notification insert failed",
			"transaction_id", intent.ID, "err", err)
		return s.record(ctx, Outcome{
			Kind:   OutcomeFault,
			Detail: fmt.Sprintf("payment %s insert failed", intent.ID),
		})
	}

	return s.record(ctx, Outcome{
		Kind:         OutcomePersisted,
		Detail:       fmt.Sprintf("payment %s recorded for user %d", intent.ID, userID),
		Notification: n,
	})
}

func subjectFromSession(sess SessionData) (int64, error) {
	raw, ok := sess.Metadata[MetadataUserID]
	if !ok || raw == "" {
		return 0, errors.New("missing user_id metadata")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("malformed user_id metadata %q", raw)
	}
	return id, nil
}

func (s *WebhookService) record(ctx context.Context, o Outcome) Outcome {
	if s.txlog != nil {
		if err := s.txlog.Append(string(o.Kind), o.Detail); err != nil {
			s.logger.ErrorContext(ctx, "transaction log append failed", "err", err)
		}
	}
	s.logger.InfoContext(ctx, "webhook processed", "outcome", string(o.Kind), "detail", o.Detail)
	return o
}
