package payment

import (
	"context"

	"github.com/ahmetkoprulu/battlepass/common/data"
	"github.com/ahmetkoprulu/battlepass/common/utils"
	"github.com/ahmetkoprulu/battlepass/models"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const paymentColumns = `id, user_id, season_id, method, currency, amount, status, reference, created_at, updated_at`

type PgPaymentStore struct {
	db *data.PgDbContext
}

func NewPgPaymentStore(db *data.PgDbContext) *PgPaymentStore {
	return &PgPaymentStore{db: db}
}

func (s *PgPaymentStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.db.Exec(ctx, query,
		payment.ID, payment.UserID, payment.SeasonID, payment.Method, payment.Currency,
		payment.Amount, payment.Status, payment.Reference, payment.CreatedAt, payment.UpdatedAt,
	)
	if err != nil {
		if data.IsUniqueViolation(err) {
			return models.ErrConflict
		}
		utils.Logger.Error("Failed to create payment", zap.String("payment_id", payment.ID), zap.Error(err))
		return data.StoreFailure("create_payment", err)
	}
	return nil
}

func (s *PgPaymentStore) GetPayment(ctx context.Context, id string) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	payment, err := scanPayment(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if data.IsNoRows(err) {
			return nil, models.ErrNotFound
		}
		utils.Logger.Error("Failed to get payment", zap.String("payment_id", id), zap.Error(err))
		return nil, data.StoreFailure("get_payment", err)
	}
	return payment, nil
}

func (s *PgPaymentStore) ListPayments(ctx context.Context) ([]models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		utils.Logger.Error("Failed to list payments", zap.Error(err))
		return nil, data.StoreFailure("list_payments", err)
	}
	defer rows.Close()

	payments := make([]models.Payment, 0)
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, data.StoreFailure("list_payments", err)
		}
		payments = append(payments, *payment)
	}
	if err := rows.Err(); err != nil {
		return nil, data.StoreFailure("list_payments", err)
	}

	return payments, nil
}

func (s *PgPaymentStore) SetPaymentStatus(ctx context.Context, id string, status models.PaymentStatus, reference string) (*models.Payment, error) {
	query := `
		UPDATE payments
		SET status = $2,
			reference = COALESCE(NULLIF($3, ''), reference),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + paymentColumns

	payment, err := scanPayment(s.db.QueryRow(ctx, query, id, status, reference))
	if err != nil {
		if data.IsNoRows(err) {
			return nil, models.ErrNotFound
		}
		utils.Logger.Error("Failed to update payment status", zap.String("payment_id", id), zap.Error(err))
		return nil, data.StoreFailure("set_payment_status", err)
	}
	return payment, nil
}

func scanPayment(row pgx.Row) (*models.Payment, error) {
	p := &models.Payment{}
	err := row.Scan(
		&p.ID, &p.UserID, &p.SeasonID, &p.Method, &p.Currency,
		&p.Amount, &p.Status, &p.Reference, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}
