package payments

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// Repository is the stored-procedure boundary around payment notifications.
// Every call is a named, parameterized procedure; there is no ad-hoc SQL
// against the table.
type Repository interface {
	Insert(ctx context.Context, n *PaymentNotification) error
	ListAll(ctx context.Context) ([]PaymentNotification, error)
	ListByUser(ctx context.Context, userID int64) ([]PaymentNotification, error)
	GetByID(ctx context.Context, id int64) (*PaymentNotification, error)
}

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// Insert maps a unique-key violation on transaction_id to
// ErrDuplicateTransaction; the caller decides that this is a success.
func (r *Repo) Insert(ctx context.Context, n *PaymentNotification) error {
	err := r.db.WithContext(ctx).Exec(
		"CALL sp_insert_payment_notification(?, ?, ?, ?, ?, ?, ?)",
		n.OccurredAt, n.TransactionID, n.Status, CentsToDecimal(n.AmountCents),
		n.Bank, n.PaymentMethod, n.UserID,
	).Error
	if err != nil {
		if isDup(err) {
			return ErrDuplicateTransaction
		}
		return err
	}
	return nil
}

func (r *Repo) ListAll(ctx context.Context) ([]PaymentNotification, error) {
	rows, err := r.db.WithContext(ctx).Raw("CALL sp_get_all_payment_notifications()").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectNotifications(rows)
}

func (r *Repo) ListByUser(ctx context.Context, userID int64) ([]PaymentNotification, error) {
	rows, err := r.db.WithContext(ctx).Raw("CALL sp_get_payment_notifications_by_user(?)", userID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectNotifications(rows)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*PaymentNotification, error) {
	rows, err := r.db.WithContext(ctx).Raw("CALL sp_get_payment_notification_by_id(?)", id).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}

	n, err := scanNotification(rows)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func collectNotifications(rows *sql.Rows) ([]PaymentNotification, error) {
	out := []PaymentNotification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Result set column order is fixed by the procedures:
// id, occurred_at, transaction_id, status, amount, bank, payment_method, user_id.
func scanNotification(rows *sql.Rows) (PaymentNotification, error) {
	var n PaymentNotification
	var amount string

	if err := rows.Scan(
		&n.ID, &n.OccurredAt, &n.TransactionID, &n.Status,
		&amount, &n.Bank, &n.PaymentMethod, &n.UserID,
	); err != nil {
		return PaymentNotification{}, err
	}

	cents, err := DecimalToCents(amount)
	if err != nil {
		return PaymentNotification{}, err
	}
	n.AmountCents = cents
	return n, nil
}

func isDup(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
