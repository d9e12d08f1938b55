package model

import "time"

// DefaultCurrency is used when a checkout request omits one.
const DefaultCurrency = "usd"

// PaymentTransaction records one checkout session opened with the processor.
type PaymentTransaction struct {
	SessionID     string            `json:"session_id"`
	UserID        string            `json:"user_id"`
	Amount        float64           `json:"amount"`
	Currency      string            `json:"currency"`
	Status        string            `json:"status"`
	PaymentStatus string            `json:"payment_status"`
	Metadata      map[string]string `json:"metadata"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// CheckoutRequest is the payload for POST /api/payments/create-checkout.
type CheckoutRequest struct {
	Amount   float64           `json:"amount"`
	Currency string            `json:"currency,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
	HostURL  string            `json:"host_url"`
}

// CheckoutSessionParams is what the processor needs to open a session.
type CheckoutSessionParams struct {
	Amount     float64
	Currency   string
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// CheckoutSession is the processor's answer to a create request.
type CheckoutSession struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

// CheckoutStatus is the processor's view of a session.
// AmountTotal is in the currency's minor unit.
type CheckoutStatus struct {
	Status        string            `json:"status"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	Metadata      map[string]string `json:"metadata"`
}

// WebhookEvent is a verified processor notification.
type WebhookEvent struct {
	ID            string
	Type          string
	SessionID     string
	PaymentStatus string
	Status        string
}
