package service

import (
	"context"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	carts     repository.CartRepository
	wishlists repository.WishlistRepository
	logger    zerolog.Logger
}

// NewCartService creates a new cart and wishlist service.
func NewCartService(carts repository.CartRepository, wishlists repository.WishlistRepository, logger zerolog.Logger) CartService {
	return &cartService{
		carts:     carts,
		wishlists: wishlists,
		logger:    logger.With().Str("service", "cart").Logger(),
	}
}

// AddToCart appends item to the user's cart. Identical items are kept as separate lines.
func (s *cartService) AddToCart(ctx context.Context, userID string, item model.CartItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if item.Customization == nil {
		item.Customization = map[string]string{}
	}

	if err := s.carts.AppendItem(ctx, userID, item); err != nil {
		return fmt.Errorf("failed to add to cart: %w", err)
	}

	s.logger.Debug().
		Str("user_id", userID).
		Str("product_id", item.ProductID).
		Int("quantity", item.Quantity).
		Msg("item added to cart")
	return nil
}

// GetCart returns the user's cart, or an empty one.
func (s *cartService) GetCart(ctx context.Context, userID string) (*model.Cart, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if cart == nil {
		return &model.Cart{UserID: userID, Items: []model.CartItem{}}, nil
	}
	return cart, nil
}

// AddToWishlist adds item unless its product is already wishlisted.
func (s *cartService) AddToWishlist(ctx context.Context, userID string, item model.WishlistItem) error {
	if item.ProductID == "" {
		return model.ErrMissingProductID
	}

	if err := s.wishlists.AddItem(ctx, userID, item); err != nil {
		return fmt.Errorf("failed to add to wishlist: %w", err)
	}
	return nil
}

// GetWishlist returns the user's wishlist, or an empty one.
func (s *cartService) GetWishlist(ctx context.Context, userID string) (*model.Wishlist, error) {
	w, err := s.wishlists.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wishlist: %w", err)
	}
	if w == nil {
		return &model.Wishlist{UserID: userID, Items: []model.WishlistItem{}}, nil
	}
	return w, nil
}
