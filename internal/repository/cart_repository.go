package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// AppendItem appends item with a single upsert; concurrent appends for one user all persist.
func (r *cartRepository) AppendItem(ctx context.Context, userID string, item model.CartItem) error {
	query := `
		INSERT INTO carts (user_id, items, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET items = carts.items || EXCLUDED.items,
		    updated_at = NOW()
	`

	_, err := r.pool.Exec(ctx, query, userID, []model.CartItem{item})
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", userID).
			Str("product_id", item.ProductID).
			Msg("failed to append cart item")
		return fmt.Errorf("failed to append cart item: %w", err)
	}

	return nil
}

// Get retrieves the user's cart.
func (r *cartRepository) Get(ctx context.Context, userID string) (*model.Cart, error) {
	query := `
		SELECT user_id, items
		FROM carts
		WHERE user_id = $1
	`

	var cart model.Cart
	err := r.pool.QueryRow(ctx, query, userID).Scan(&cart.UserID, &cart.Items)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}

	return &cart, nil
}

// Delete removes the user's cart. Deleting an absent cart is not an error.
func (r *cartRepository) Delete(ctx context.Context, tx pgx.Tx, userID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to delete cart")
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	r.logger.Debug().
		Str("user_id", userID).
		Int64("rows", tag.RowsAffected()).
		Msg("cart deleted")

	return nil
}
