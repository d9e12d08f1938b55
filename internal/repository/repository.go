package repository

import (
	"context"
	"time"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserRepository defines the interface for user account access.
type UserRepository interface {
	// Create inserts a user. Returns model.ErrEmailExists when the email is taken.
	Create(ctx context.Context, user *model.User) error

	// GetByEmail retrieves a user by email, or nil when none exists.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves products in insertion order, optionally filtered by exact category.
	List(ctx context.Context, category string, limit int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID, or nil when none exists.
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

// CartRepository defines the interface for per-user carts.
type CartRepository interface {
	// AppendItem atomically appends item to the user's cart, creating the cart if absent.
	AppendItem(ctx context.Context, userID string, item model.CartItem) error

	// Get retrieves the user's cart, or nil when none exists.
	Get(ctx context.Context, userID string) (*model.Cart, error)

	// Delete removes the user's cart within the provided transaction.
	Delete(ctx context.Context, tx pgx.Tx, userID string) error
}

// WishlistRepository defines the interface for per-user wishlists.
type WishlistRepository interface {
	// AddItem atomically adds item unless a matching product_id is already present.
	AddItem(ctx context.Context, userID string, item model.WishlistItem) error

	// Get retrieves the user's wishlist, or nil when none exists.
	Get(ctx context.Context, userID string) (*model.Wishlist, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// ListByUser retrieves a user's orders, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]model.Order, error)

	// ListAll retrieves orders of every user, newest first.
	ListAll(ctx context.Context, limit int) ([]model.Order, error)

	// GetForUser retrieves an order owned by userID, or nil when none exists.
	GetForUser(ctx context.Context, orderID, userID string) (*model.Order, error)

	// SetPaymentSession links an unpaid order owned by userID to a checkout session for amount.
	// Reports false when no such order exists, it is already paid, or amount differs from its total.
	SetPaymentSession(ctx context.Context, orderID, userID, sessionID string, amount float64) (bool, error)

	// MarkPaidBySession confirms every order linked to sessionID and returns how many changed.
	MarkPaidBySession(ctx context.Context, sessionID string) (int64, error)
}

// PaymentRepository defines the interface for checkout session records.
type PaymentRepository interface {
	// Create inserts a new payment transaction.
	Create(ctx context.Context, txn *model.PaymentTransaction) error

	// UpdateStatus records the processor's latest view of a session.
	// Reports false when the session is unknown.
	UpdateStatus(ctx context.Context, sessionID, status, paymentStatus string, updatedAt time.Time) (bool, error)

	// GetBySessionID retrieves a transaction, or nil when none exists.
	GetBySessionID(ctx context.Context, sessionID string) (*model.PaymentTransaction, error)
}
