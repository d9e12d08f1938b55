package service

import (
	"context"

	"storefront/internal/model"
)

// AuthService registers and authenticates users against stored credentials.
type AuthService interface {
	// Register creates a customer account. Returns model.ErrEmailExists for a taken email.
	Register(ctx context.Context, email, password, name string) (*model.User, error)

	// Authenticate checks credentials. Returns model.ErrInvalidCredentials on any mismatch.
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
}

// ProductService defines read-only catalog operations.
type ProductService interface {
	// List retrieves up to 100 products, optionally filtered by exact category.
	List(ctx context.Context, category string) ([]model.Product, error)

	// GetByID retrieves a single product. Returns model.ErrProductNotFound when absent.
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

// CartService manages per-user carts and wishlists.
type CartService interface {
	AddToCart(ctx context.Context, userID string, item model.CartItem) error
	GetCart(ctx context.Context, userID string) (*model.Cart, error)
	AddToWishlist(ctx context.Context, userID string, item model.WishlistItem) error
	GetWishlist(ctx context.Context, userID string) (*model.Wishlist, error)
}

// OrderService defines operations for order management.
type OrderService interface {
	// CreateOrder turns the submitted items into a pending order and consumes the user's cart.
	CreateOrder(ctx context.Context, userID string, req *model.OrderRequest) (*model.Order, error)

	// ListOrders returns the orders visible to principal, newest first.
	ListOrders(ctx context.Context, principal model.Principal) ([]model.Order, error)

	// CheckPayable fails unless the user's order is unpaid and totals amount.
	CheckPayable(ctx context.Context, userID, orderID string, amount float64) error

	// AttachPaymentSession links the user's unpaid order to a checkout session for amount.
	AttachPaymentSession(ctx context.Context, userID, orderID, sessionID string, amount float64) error

	// ConfirmPayment marks orders paid by sessionID as confirmed.
	ConfirmPayment(ctx context.Context, sessionID string) (int64, error)
}

// PaymentService orchestrates checkout sessions with the payment processor.
type PaymentService interface {
	CreateCheckout(ctx context.Context, userID string, req *model.CheckoutRequest) (*model.CheckoutSession, error)
	PollStatus(ctx context.Context, sessionID string) (*model.CheckoutStatus, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) (*model.WebhookEvent, error)
}

// RecommendationService produces style advice from user preferences.
type RecommendationService interface {
	Recommend(ctx context.Context, userID string, prefs model.StylePreferences) (string, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// OrderNotifier publishes order events to real-time subscribers.
type OrderNotifier interface {
	PublishNewOrder(ctx context.Context, order *model.Order) error
}

// PaymentProcessor is the external checkout-session provider.
type PaymentProcessor interface {
	CreateCheckoutSession(ctx context.Context, params model.CheckoutSessionParams) (*model.CheckoutSession, error)
	GetCheckoutStatus(ctx context.Context, sessionID string) (*model.CheckoutStatus, error)
	ParseWebhook(payload []byte, signature string) (*model.WebhookEvent, error)
}

// Completer is the external text-completion provider.
type Completer interface {
	Complete(ctx context.Context, req model.CompletionRequest) (string, error)
}

// NopNotifier discards every event.
type NopNotifier struct{}

// PublishNewOrder implements OrderNotifier.
func (NopNotifier) PublishNewOrder(context.Context, *model.Order) error { return nil }
