package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/plantnet/plantnet-server/internal/core/domain"
	"github.com/plantnet/plantnet-server/internal/core/ports"
)

const (
	scopeOrder   = "order"
	scopePayment = "payment"

	paymentSucceeded = "succeeded"
)

// OrderOptions toggles the optional safeguards around order placement.
type OrderOptions struct {
	// VerifyPayments retrieves the transaction from the gateway and requires
	// it to have succeeded for the order's price, once per transaction.
	VerifyPayments bool
}

type OrderService struct {
	repo        ports.OrderRepository
	gateway     ports.PaymentGateway
	notifier    ports.Notifier
	events      ports.OrderEventPublisher
	idempotency ports.IdempotencyStore
	metrics     ports.Metrics
	opts        OrderOptions
	logger      zerolog.Logger
}

func NewOrderService(
	repo ports.OrderRepository,
	gateway ports.PaymentGateway,
	notifier ports.Notifier,
	events ports.OrderEventPublisher,
	idempotency ports.IdempotencyStore,
	metrics ports.Metrics,
	opts OrderOptions,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{
		repo:        repo,
		gateway:     gateway,
		notifier:    notifier,
		events:      events,
		idempotency: idempotency,
		metrics:     metricsOrNop(metrics),
		opts:        opts,
		logger:      logger,
	}
}

// Place records an order after the client observed a succeeded payment and
// notifies both parties. Stock is not touched here: the client decrements it
// with a separate inventory call. A failed placement frees its
// Idempotency-Key so the client can retry.
func (s *OrderService) Place(ctx context.Context, in ports.PlaceOrderInput) (string, error) {
	release, err := reserveKey(ctx, s.idempotency, s.logger, scopeOrder, in.IdempotencyKey)
	if err != nil {
		return "", err
	}
	id, err := s.place(ctx, in.Order)
	if err != nil {
		release()
		return "", err
	}
	return id, nil
}

func (s *OrderService) place(ctx context.Context, order domain.Order) (string, error) {
	order.ID = ""
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}

	releasePayment := func() {}
	if s.opts.VerifyPayments {
		release, err := s.verifyPayment(ctx, &order)
		if err != nil {
			return "", err
		}
		releasePayment = release
		order.PaymentVerified = true
	}

	id, err := s.repo.Create(ctx, &order)
	if err != nil {
		releasePayment()
		s.logger.Error().Err(err).Str("transaction_id", order.TransactionID).Msg("failed to create order")
		return "", fmt.Errorf("place order: %w", err)
	}
	order.ID = id
	s.metrics.OrderPlaced()

	s.notify(&order)

	if s.events != nil {
		if err := s.events.PublishOrderPlaced(ctx, &order); err != nil {
			s.logger.Warn().Err(err).Str("order_id", id).Msg("failed to publish order event")
		}
	}

	s.logger.Info().
		Str("order_id", id).
		Str("plant_id", order.PlantID).
		Int("quantity", order.Quantity).
		Str("customer", order.Customer.Email).
		Msg("order placed")
	return id, nil
}

// verifyPayment accepts a transaction that succeeded for exactly the order's
// price and is not attached to any other order. The transaction id stays
// claimed in the idempotency store until the returned release is called.
func (s *OrderService) verifyPayment(ctx context.Context, order *domain.Order) (func(), error) {
	txID := order.TransactionID
	if txID == "" {
		return nil, domain.ErrPaymentNotConfirmed
	}

	used, err := s.repo.ExistsByTransactionID(ctx, txID)
	if err != nil {
		return nil, fmt.Errorf("verify payment: %w", err)
	}
	if used {
		return nil, fmt.Errorf("verify payment %s: %w", txID, domain.ErrPaymentReused)
	}

	intent, err := s.gateway.GetPaymentIntent(ctx, txID)
	if err != nil {
		s.logger.Warn().Err(err).Str("transaction_id", txID).Msg("payment lookup failed")
		return nil, fmt.Errorf("verify payment: %w", domain.ErrPaymentNotConfirmed)
	}
	if intent.Status != paymentSucceeded {
		return nil, fmt.Errorf("verify payment %s: %w", intent.Status, domain.ErrPaymentNotConfirmed)
	}
	if want := AmountMinorUnits(1, order.Price); intent.Amount != want {
		s.logger.Warn().
			Str("transaction_id", txID).
			Int64("paid", intent.Amount).
			Int64("order_amount", want).
			Msg("payment amount mismatch")
		return nil, fmt.Errorf("verify payment %s: %w", txID, domain.ErrPaymentMismatch)
	}

	release, err := reserveKey(ctx, s.idempotency, s.logger, scopePayment, txID)
	if errors.Is(err, domain.ErrDuplicateRequest) {
		return nil, fmt.Errorf("verify payment %s: %w", txID, domain.ErrPaymentReused)
	}
	if err != nil {
		return nil, err
	}
	return release, nil
}

func (s *OrderService) notify(o *domain.Order) {
	if s.notifier == nil {
		return
	}
	if o.Customer.Email != "" {
		s.notifier.Enqueue(ports.Email{
			To:      o.Customer.Email,
			Subject: "Order Successful",
			Body:    fmt.Sprintf("You've placed an order successfully. Transaction Id : %s", o.ID),
		})
	}
	if o.Seller != "" {
		s.notifier.Enqueue(ports.Email{
			To:      o.Seller,
			Subject: "Hurray! You have an order to process",
			Body:    fmt.Sprintf("Get the plants ready for %s", o.Customer.Name),
		})
	}
}

func (s *OrderService) CustomerOrders(ctx context.Context, email string) ([]*domain.OrderView, error) {
	orders, err := s.repo.ListByCustomer(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("customer orders: %w", err)
	}
	return nonNilViews(orders), nil
}

func (s *OrderService) SellerOrders(ctx context.Context, email string) ([]*domain.OrderView, error) {
	orders, err := s.repo.ListBySeller(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("seller orders: %w", err)
	}
	return nonNilViews(orders), nil
}

// UpdateStatus stores status verbatim; there is no transition table.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*domain.UpdateResult, error) {
	res, err := s.repo.SetStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrOrderNotFound
	}
	s.logger.Info().Str("order_id", id).Str("status", status).Msg("order status updated")
	return res, nil
}

// Cancel deletes an order unless it has been delivered.
func (s *OrderService) Cancel(ctx context.Context, id string) (int64, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("cancel order: %w", err)
	}
	if !order.Cancellable() {
		return 0, domain.ErrOrderDelivered
	}

	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("cancel order: %w", err)
	}
	s.logger.Info().Str("order_id", id).Msg("order cancelled")
	return n, nil
}

func nonNilViews(v []*domain.OrderView) []*domain.OrderView {
	if v == nil {
		return []*domain.OrderView{}
	}
	return v
}
