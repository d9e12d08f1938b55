// Package payment adapts the Stripe checkout-session API to the storefront's payment port.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"storefront/internal/config"
	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

const provider = "stripe"

// productName is the single line item shown on the hosted checkout page.
const productName = "Storefront order"

// StripeProcessor opens and inspects Stripe Checkout sessions.
type StripeProcessor struct {
	api           *client.API
	webhookSecret string
	logger        zerolog.Logger
}

// Option customizes a StripeProcessor.
type Option func(*stripe.BackendConfig)

// WithHTTPClient sets the HTTP client used for Stripe API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(bc *stripe.BackendConfig) {
		bc.HTTPClient = c
	}
}

// WithMaxNetworkRetries overrides the Stripe client's retry count.
func WithMaxNetworkRetries(n int64) Option {
	return func(bc *stripe.BackendConfig) {
		bc.MaxNetworkRetries = stripe.Int64(n)
	}
}

// NewStripeProcessor creates a processor from cfg. A non-empty cfg.APIURL replaces the API host.
func NewStripeProcessor(cfg config.StripeConfig, logger zerolog.Logger, opts ...Option) *StripeProcessor {
	bc := &stripe.BackendConfig{
		LeveledLogger: &stripe.LeveledLogger{Level: stripe.LevelError},
	}
	if cfg.APIURL != "" {
		bc.URL = stripe.String(cfg.APIURL)
	}
	for _, opt := range opts {
		opt(bc)
	}

	api := &client.API{}
	api.Init(cfg.APIKey, &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, bc),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, bc),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, bc),
	})

	return &StripeProcessor{
		api:           api,
		webhookSecret: cfg.WebhookSecret,
		logger:        logger.With().Str("component", "stripe").Logger(),
	}
}

// CreateCheckoutSession opens a one-line-item payment session for params.Amount.
func (p *StripeProcessor) CreateCheckoutSession(ctx context.Context, params model.CheckoutSessionParams) (*model.CheckoutSession, error) {
	unitAmount := toMinorUnits(params.Amount)
	if unitAmount <= 0 {
		return nil, model.ErrInvalidAmount
	}

	sp := &stripe.CheckoutSessionParams{
		Params:     stripe.Params{Context: ctx},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(params.Currency),
					UnitAmount: stripe.Int64(unitAmount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(productName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	for k, v := range params.Metadata {
		sp.AddMetadata(k, v)
	}

	session, err := p.api.CheckoutSessions.New(sp)
	if err != nil {
		return nil, upstreamError("create checkout session", err)
	}

	p.logger.Debug().
		Str("session_id", session.ID).
		Int64("unit_amount", unitAmount).
		Str("currency", params.Currency).
		Msg("checkout session opened")

	return &model.CheckoutSession{URL: session.URL, SessionID: session.ID}, nil
}

// GetCheckoutStatus fetches the current state of a session.
func (p *StripeProcessor) GetCheckoutStatus(ctx context.Context, sessionID string) (*model.CheckoutStatus, error) {
	session, err := p.api.CheckoutSessions.Get(sessionID, &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return nil, upstreamError("get checkout session", err)
	}

	return &model.CheckoutStatus{
		Status:        string(session.Status),
		PaymentStatus: string(session.PaymentStatus),
		AmountTotal:   session.AmountTotal,
		Currency:      string(session.Currency),
		Metadata:      session.Metadata,
	}, nil
}

// ParseWebhook verifies the Stripe-Signature header and decodes the event.
// Session fields are filled only for checkout.session.* events.
func (p *StripeProcessor) ParseWebhook(payload []byte, signature string) (*model.WebhookEvent, error) {
	if p.webhookSecret == "" {
		return nil, errors.New("webhook secret is not configured")
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, p.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, err
	}

	out := &model.WebhookEvent{
		ID:   event.ID,
		Type: string(event.Type),
	}

	if event.Data != nil && isSessionEvent(out.Type) {
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return nil, fmt.Errorf("failed to decode checkout session: %w", err)
		}
		out.SessionID = session.ID
		out.Status = string(session.Status)
		out.PaymentStatus = string(session.PaymentStatus)
	}

	return out, nil
}

func isSessionEvent(eventType string) bool {
	return strings.HasPrefix(eventType, "checkout.session.")
}

// toMinorUnits converts a decimal amount to cents, rounding half away from zero.
func toMinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Shift(2).Round(0).IntPart()
}

func upstreamError(op string, err error) error {
	var se *stripe.Error
	if errors.As(err, &se) {
		return &model.UpstreamError{
			Provider:   provider,
			StatusCode: se.HTTPStatusCode,
			Message:    se.Msg,
			Err:        err,
		}
	}
	return &model.UpstreamError{
		Provider: provider,
		Message:  fmt.Sprintf("failed to %s", op),
		Err:      err,
	}
}
