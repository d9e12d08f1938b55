package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// paymentRepository implements the PaymentRepository interface using PostgreSQL.
type paymentRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPaymentRepository creates a new PostgreSQL-backed payment transaction repository.
func NewPaymentRepository(pool *pgxpool.Pool, logger zerolog.Logger) PaymentRepository {
	return &paymentRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "payment").Logger(),
	}
}

// Create inserts a new payment transaction.
func (r *paymentRepository) Create(ctx context.Context, txn *model.PaymentTransaction) error {
	query := `
		INSERT INTO payment_transactions
			(session_id, user_id, amount, currency, status, payment_status, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	metadata := txn.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}

	_, err := r.pool.Exec(ctx, query,
		txn.SessionID,
		txn.UserID,
		txn.Amount,
		txn.Currency,
		txn.Status,
		txn.PaymentStatus,
		metadata,
		txn.CreatedAt,
		txn.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("session_id", txn.SessionID).Msg("failed to create payment transaction")
		return fmt.Errorf("failed to create payment transaction: %w", err)
	}

	return nil
}

// UpdateStatus records the processor's latest view of a session.
func (r *paymentRepository) UpdateStatus(ctx context.Context, sessionID, status, paymentStatus string, updatedAt time.Time) (bool, error) {
	query := `
		UPDATE payment_transactions
		SET status = $2, payment_status = $3, updated_at = $4
		WHERE session_id = $1
	`

	tag, err := r.pool.Exec(ctx, query, sessionID, status, paymentStatus, updatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to update payment transaction")
		return false, fmt.Errorf("failed to update payment transaction: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// GetBySessionID retrieves a transaction by its processor session ID.
func (r *paymentRepository) GetBySessionID(ctx context.Context, sessionID string) (*model.PaymentTransaction, error) {
	query := `
		SELECT session_id, user_id, amount, currency, status, payment_status, metadata, created_at, updated_at
		FROM payment_transactions
		WHERE session_id = $1
	`

	var t model.PaymentTransaction
	err := r.pool.QueryRow(ctx, query, sessionID).Scan(
		&t.SessionID,
		&t.UserID,
		&t.Amount,
		&t.Currency,
		&t.Status,
		&t.PaymentStatus,
		&t.Metadata,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to query payment transaction")
		return nil, fmt.Errorf("failed to query payment transaction: %w", err)
	}

	return &t, nil
}
