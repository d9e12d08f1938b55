package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// Webhook event types that carry a settled checkout session.
const (
	eventCheckoutCompleted     = "checkout.session.completed"
	eventAsyncPaymentSucceeded = "checkout.session.async_payment_succeeded"
)

// paymentService implements PaymentService.
type paymentService struct {
	processor PaymentProcessor
	payments  repository.PaymentRepository
	orders    OrderService
	logger    zerolog.Logger
}

// NewPaymentService creates a new payment orchestration service.
func NewPaymentService(
	processor PaymentProcessor,
	payments repository.PaymentRepository,
	orders OrderService,
	logger zerolog.Logger,
) PaymentService {
	return &paymentService{
		processor: processor,
		payments:  payments,
		orders:    orders,
		logger:    logger.With().Str("service", "payment").Logger(),
	}
}

// CreateCheckout opens a checkout session and records it as pending.
// Metadata keys from the caller are kept except user_id, which is always the caller.
func (s *paymentService) CreateCheckout(ctx context.Context, userID string, req *model.CheckoutRequest) (*model.CheckoutSession, error) {
	if req == nil || req.Amount <= 0 {
		return nil, model.ErrInvalidAmount
	}

	host := strings.TrimRight(strings.TrimSpace(req.HostURL), "/")
	if host == "" {
		return nil, model.ErrMissingHostURL
	}

	currency := strings.ToLower(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = model.DefaultCurrency
	}

	metadata := make(map[string]string, len(req.Metadata)+1)
	for k, v := range req.Metadata {
		metadata[k] = v
	}
	metadata["user_id"] = userID

	orderID := metadata["order_id"]
	if orderID != "" {
		if err := s.orders.CheckPayable(ctx, userID, orderID, req.Amount); err != nil {
			return nil, err
		}
	}

	session, err := s.processor.CreateCheckoutSession(ctx, model.CheckoutSessionParams{
		Amount:     req.Amount,
		Currency:   currency,
		SuccessURL: host + "/checkout-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  host + "/checkout",
		Metadata:   metadata,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to create checkout session")
		return nil, err
	}

	now := time.Now().UTC()
	txn := &model.PaymentTransaction{
		SessionID:     session.SessionID,
		UserID:        userID,
		Amount:        req.Amount,
		Currency:      currency,
		Status:        model.PaymentStatusPending,
		PaymentStatus: model.PaymentStatusPending,
		Metadata:      metadata,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.payments.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to record checkout session: %w", err)
	}

	if orderID != "" {
		if err := s.orders.AttachPaymentSession(ctx, userID, orderID, session.SessionID, req.Amount); err != nil {
			s.logger.Error().
				Err(err).
				Str("session_id", session.SessionID).
				Str("order_id", orderID).
				Msg("failed to link order to checkout session")
		}
	}

	s.logger.Info().
		Str("session_id", session.SessionID).
		Str("user_id", userID).
		Float64("amount", req.Amount).
		Str("currency", currency).
		Msg("checkout session created")

	return session, nil
}

// PollStatus fetches a session opened through CreateCheckout from the processor and applies it locally.
func (s *paymentService) PollStatus(ctx context.Context, sessionID string) (*model.CheckoutStatus, error) {
	txn, err := s.payments.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment transaction: %w", err)
	}
	if txn == nil {
		return nil, model.ErrCheckoutNotFound
	}

	status, err := s.processor.GetCheckoutStatus(ctx, sessionID)
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to get checkout status")
		return nil, err
	}

	if err := s.settle(ctx, sessionID, status.Status, status.PaymentStatus); err != nil {
		return nil, err
	}

	return status, nil
}

// HandleWebhook verifies a processor notification and settles completed, paid sessions.
func (s *paymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) (*model.WebhookEvent, error) {
	event, err := s.processor.ParseWebhook(payload, signature)
	if err != nil {
		s.logger.Warn().Err(err).Msg("rejected webhook")
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidWebhook, err)
	}

	s.logger.Info().
		Str("event_id", event.ID).
		Str("event_type", event.Type).
		Str("session_id", event.SessionID).
		Msg("webhook received")

	switch event.Type {
	case eventCheckoutCompleted, eventAsyncPaymentSucceeded:
		if event.SessionID != "" && event.PaymentStatus == model.PaymentStatusPaid {
			if err := s.settle(ctx, event.SessionID, event.Status, event.PaymentStatus); err != nil {
				return nil, err
			}
		}
	}

	return event, nil
}

// settle stores the processor's view of a session and confirms its orders once paid.
func (s *paymentService) settle(ctx context.Context, sessionID, status, paymentStatus string) error {
	found, err := s.payments.UpdateStatus(ctx, sessionID, status, paymentStatus, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update payment transaction: %w", err)
	}
	if !found {
		s.logger.Warn().Str("session_id", sessionID).Msg("status for unknown payment transaction")
	}

	if paymentStatus != model.PaymentStatusPaid {
		return nil
	}

	if _, err := s.orders.ConfirmPayment(ctx, sessionID); err != nil {
		return err
	}
	return nil
}
