package paymentrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/payportal/internal/domain"
	"github.com/GlebRadaev/payportal/internal/pg"
)

const paymentColumns = "id, reference, username, full_name, instrument_last4, instrument_sealed, code_sealed, checksum_valid, expiry, amount, status, submitted_at"

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var (
		payment domain.Payment
		status  string
	)
	err := row.Scan(
		&payment.ID, &payment.Reference, &payment.Username, &payment.FullName,
		&payment.InstrumentLast4, &payment.InstrumentSealed, &payment.CodeSealed,
		&payment.ChecksumValid, &payment.Expiry, &payment.Amount, &status, &payment.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}
	payment.Status = domain.PaymentStatus(status)
	return &payment, nil
}

func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	query := `
		INSERT INTO payments (reference, username, full_name, instrument_last4, instrument_sealed, code_sealed, checksum_valid, expiry, amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, submitted_at
	`
	err := r.db.QueryRow(ctx, query,
		payment.Reference, payment.Username, payment.FullName, payment.InstrumentLast4,
		payment.InstrumentSealed, payment.CodeSealed, payment.ChecksumValid, payment.Expiry,
		payment.Amount, string(payment.Status),
	).Scan(&payment.ID, &payment.SubmittedAt)
	if err != nil {
		zap.L().Error("can't save payment", zap.Error(err))
		return nil, err
	}
	return payment, nil
}

// MarkStatus moves a Pending payment to status. A payment that already left
// Pending is returned unchanged with changed=false.
func (r *Repository) MarkStatus(ctx context.Context, reference string, status domain.PaymentStatus) (*domain.Payment, bool, error) {
	var (
		payment *domain.Payment
		changed bool
	)
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		query := "UPDATE payments SET status = $1 WHERE reference = $2 AND status = $3 RETURNING " + paymentColumns
		updated, err := scanPayment(r.db.QueryRow(ctx, query, string(status), reference, string(domain.PaymentPending)))
		if err == nil {
			payment, changed = updated, true
			return nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			zap.L().Error("failed to update payment status", zap.Error(err))
			return err
		}

		current, err := scanPayment(r.db.QueryRow(ctx, "SELECT "+paymentColumns+" FROM payments WHERE reference = $1", reference))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrPaymentNotFound
			}
			zap.L().Error("failed to get payment", zap.Error(err))
			return err
		}
		payment = current
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return payment, changed, nil
}

func (r *Repository) ListByUsername(ctx context.Context, username string) ([]domain.Payment, error) {
	query := "SELECT " + paymentColumns + " FROM payments WHERE username = $1 ORDER BY submitted_at DESC, id DESC"
	rows, err := r.db.Query(ctx, query, username)
	if err != nil {
		zap.L().Error("failed to list payments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0)
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			zap.L().Error("failed to scan payment", zap.Error(err))
			return nil, err
		}
		payments = append(payments, *payment)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("rows iteration error", zap.Error(err))
		return nil, err
	}
	return payments, nil
}
