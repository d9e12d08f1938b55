package repository

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts a new order within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (id, user_id, items, total_amount, status, payment_status, payment_session_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := tx.Exec(ctx, query,
		order.ID,
		order.UserID,
		order.Items,
		order.TotalAmount,
		order.Status,
		order.PaymentStatus,
		order.PaymentSessionID,
		order.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID).
		Int("item_count", len(order.Items)).
		Msg("order created successfully")

	return nil
}

const orderColumns = `id, user_id, items, total_amount, status, payment_status, payment_session_id, created_at`

// ListByUser retrieves a user's orders, newest first.
func (r *orderRepository) ListByUser(ctx context.Context, userID string, limit int) ([]model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	return r.collect(rows)
}

// ListAll retrieves orders of every user, newest first.
func (r *orderRepository) ListAll(ctx context.Context, limit int) ([]model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query all orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	return r.collect(rows)
}

// GetForUser retrieves an order owned by userID, or nil when none exists.
func (r *orderRepository) GetForUser(ctx context.Context, orderID, userID string) (*model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1 AND user_id = $2
	`

	rows, err := r.pool.Query(ctx, query, orderID, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	orders, err := r.collect(rows)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}
	return &orders[0], nil
}

// SetPaymentSession links an unpaid order owned by userID to a checkout session
// whose amount matches the order total to the cent.
func (r *orderRepository) SetPaymentSession(ctx context.Context, orderID, userID, sessionID string, amount float64) (bool, error) {
	query := `
		UPDATE orders
		SET payment_session_id = $3
		WHERE id = $1
		  AND user_id = $2
		  AND payment_status = $5
		  AND ROUND(total_amount::numeric, 2) = ROUND($4::float8::numeric, 2)
	`

	tag, err := r.pool.Exec(ctx, query, orderID, userID, sessionID, amount, model.PaymentStatusPending)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", orderID).
			Str("session_id", sessionID).
			Msg("failed to set payment session")
		return false, fmt.Errorf("failed to set payment session: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// MarkPaidBySession confirms every order linked to sessionID.
func (r *orderRepository) MarkPaidBySession(ctx context.Context, sessionID string) (int64, error) {
	query := `
		UPDATE orders
		SET status = $2, payment_status = $3
		WHERE payment_session_id = $1
	`

	tag, err := r.pool.Exec(ctx, query, sessionID, model.OrderStatusConfirmed, model.PaymentStatusPaid)
	if err != nil {
		r.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to mark orders paid")
		return 0, fmt.Errorf("failed to mark orders paid: %w", err)
	}

	r.logger.Debug().
		Str("session_id", sessionID).
		Int64("orders", tag.RowsAffected()).
		Msg("orders marked paid")

	return tag.RowsAffected(), nil
}

func (r *orderRepository) collect(rows pgx.Rows) ([]model.Order, error) {
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var o model.Order
		err := rows.Scan(
			&o.ID,
			&o.UserID,
			&o.Items,
			&o.TotalAmount,
			&o.Status,
			&o.PaymentStatus,
			&o.PaymentSessionID,
			&o.CreatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}
