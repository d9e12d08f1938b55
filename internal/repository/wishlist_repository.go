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

// wishlistRepository implements the WishlistRepository interface using PostgreSQL.
type wishlistRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewWishlistRepository creates a new PostgreSQL-backed wishlist repository.
func NewWishlistRepository(pool *pgxpool.Pool, logger zerolog.Logger) WishlistRepository {
	return &wishlistRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "wishlist").Logger(),
	}
}

// AddItem adds item unless the wishlist already contains it.
func (r *wishlistRepository) AddItem(ctx context.Context, userID string, item model.WishlistItem) error {
	query := `
		INSERT INTO wishlists (user_id, items, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET items = CASE
		        WHEN wishlists.items @> EXCLUDED.items THEN wishlists.items
		        ELSE wishlists.items || EXCLUDED.items
		    END,
		    updated_at = NOW()
	`

	_, err := r.pool.Exec(ctx, query, userID, []model.WishlistItem{item})
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", userID).
			Str("product_id", item.ProductID).
			Msg("failed to add wishlist item")
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}

	return nil
}

// Get retrieves the user's wishlist.
func (r *wishlistRepository) Get(ctx context.Context, userID string) (*model.Wishlist, error) {
	query := `
		SELECT user_id, items
		FROM wishlists
		WHERE user_id = $1
	`

	var w model.Wishlist
	err := r.pool.QueryRow(ctx, query, userID).Scan(&w.UserID, &w.Items)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query wishlist")
		return nil, fmt.Errorf("failed to query wishlist: %w", err)
	}

	return &w, nil
}
