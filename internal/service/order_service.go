package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// orderListLimit caps an order listing.
const orderListLimit = 100

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	notifier  OrderNotifier
	logger    zerolog.Logger
}

// NewOrderService creates a new order service. A nil notifier publishes nothing.
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	notifier OrderNotifier,
	logger zerolog.Logger,
) OrderService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &orderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		notifier:  notifier,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// CreateOrder persists a pending order and deletes the user's cart in one transaction,
// then publishes new_order. Publishing never fails the call.
func (s *orderService) CreateOrder(ctx context.Context, userID string, req *model.OrderRequest) (*model.Order, error) {
	if err := validateOrderRequest(req); err != nil {
		return nil, err
	}

	order := &model.Order{
		ID:            uuid.NewString(),
		UserID:        userID,
		Items:         cloneItems(req.Items),
		TotalAmount:   req.TotalAmount,
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err = s.cartRepo.Delete(ctx, tx, userID); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to clear cart")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if pubErr := s.notifier.PublishNewOrder(ctx, order); pubErr != nil {
		s.logger.Warn().Err(pubErr).Str("order_id", order.ID).Msg("failed to publish new order")
	}

	s.logger.Info().
		Str("order_id", order.ID).
		Str("user_id", userID).
		Int("item_count", len(order.Items)).
		Float64("total_amount", order.TotalAmount).
		Msg("order created successfully")

	return order, nil
}

// ListOrders returns every order to admins and only their own to everyone else.
func (s *orderService) ListOrders(ctx context.Context, principal model.Principal) ([]model.Order, error) {
	var (
		orders []model.Order
		err    error
	)
	if principal.IsAdmin() {
		orders, err = s.orderRepo.ListAll(ctx, orderListLimit)
	} else {
		orders, err = s.orderRepo.ListByUser(ctx, principal.UserID, orderListLimit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// CheckPayable reports whether the user's order may be paid by a checkout for amount.
func (s *orderService) CheckPayable(ctx context.Context, userID, orderID string, amount float64) error {
	order, err := s.orderRepo.GetForUser(ctx, orderID, userID)
	if err != nil {
		return fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return model.ErrOrderNotFound
	}
	if order.PaymentStatus != model.PaymentStatusPending {
		return model.ErrOrderAlreadyPaid
	}
	if !sameCents(order.TotalAmount, amount) {
		s.logger.Warn().
			Str("order_id", orderID).
			Float64("total_amount", order.TotalAmount).
			Float64("amount", amount).
			Msg("checkout amount does not match order total")
		return model.ErrAmountMismatch
	}
	return nil
}

// AttachPaymentSession links the user's unpaid order to sessionID when amount covers its total.
func (s *orderService) AttachPaymentSession(ctx context.Context, userID, orderID, sessionID string, amount float64) error {
	ok, err := s.orderRepo.SetPaymentSession(ctx, orderID, userID, sessionID, amount)
	if err != nil {
		return fmt.Errorf("failed to attach payment session: %w", err)
	}
	if !ok {
		s.logger.Warn().
			Str("order_id", orderID).
			Str("user_id", userID).
			Str("session_id", sessionID).
			Msg("order no longer payable by this session")
		return model.ErrOrderNotFound
	}

	s.logger.Debug().
		Str("order_id", orderID).
		Str("session_id", sessionID).
		Msg("payment session attached")
	return nil
}

// ConfirmPayment moves orders paid through sessionID to confirmed/paid.
func (s *orderService) ConfirmPayment(ctx context.Context, sessionID string) (int64, error) {
	n, err := s.orderRepo.MarkPaidBySession(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("failed to confirm payment: %w", err)
	}

	s.logger.Info().
		Str("session_id", sessionID).
		Int64("orders", n).
		Msg("payment confirmed")
	return n, nil
}

// validateOrderRequest validates the order request.
func validateOrderRequest(req *model.OrderRequest) error {
	if req == nil || len(req.Items) == 0 {
		return model.ErrEmptyOrder
	}

	for i, item := range req.Items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}

	return nil
}

func sameCents(a, b float64) bool {
	return decimal.NewFromFloat(a).Round(2).Equal(decimal.NewFromFloat(b).Round(2))
}

// cloneItems deep-copies items so the order shares nothing with the caller.
func cloneItems(items []model.CartItem) []model.CartItem {
	out := make([]model.CartItem, len(items))
	for i, item := range items {
		custom := make(map[string]string, len(item.Customization))
		for k, v := range item.Customization {
			custom[k] = v
		}
		item.Customization = custom
		out[i] = item
	}
	return out
}
