package model

import "time"

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
)

// Payment statuses shared by orders and payment transactions.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// Order is a snapshot of a cart at checkout time.
type Order struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	Items            []CartItem `json:"items"`
	TotalAmount      float64    `json:"total_amount"`
	Status           string     `json:"status"`
	PaymentStatus    string     `json:"payment_status"`
	PaymentSessionID *string    `json:"payment_session_id"`
	CreatedAt        time.Time  `json:"created_at"`
}

// OrderRequest is the payload for POST /api/orders.
// TotalAmount is stored as submitted.
type OrderRequest struct {
	Items       []CartItem `json:"items"`
	TotalAmount float64    `json:"total_amount"`
}
