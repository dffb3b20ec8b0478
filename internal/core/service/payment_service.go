package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/plantnet/plantnet-server/internal/core/domain"
	"github.com/plantnet/plantnet-server/internal/core/ports"
)

const (
	DefaultCurrency = "usd"

	eventPaymentSucceeded = "payment_intent.succeeded"
)

var minorUnitsPerMajor = decimal.NewFromInt(100)

type PaymentService struct {
	plants   ports.PlantRepository
	orders   ports.OrderRepository
	gateway  ports.PaymentGateway
	metrics  ports.Metrics
	currency string
	logger   zerolog.Logger
}

func NewPaymentService(
	plants ports.PlantRepository,
	orders ports.OrderRepository,
	gateway ports.PaymentGateway,
	metrics ports.Metrics,
	currency string,
	logger zerolog.Logger,
) *PaymentService {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &PaymentService{
		plants:   plants,
		orders:   orders,
		gateway:  gateway,
		metrics:  metricsOrNop(metrics),
		currency: currency,
		logger:   logger,
	}
}

// AmountMinorUnits returns quantity × price expressed in minor currency units.
func AmountMinorUnits(quantity int, price float64) int64 {
	return decimal.NewFromInt(int64(quantity)).
		Mul(decimal.NewFromFloat(price)).
		Mul(minorUnitsPerMajor).
		Round(0).
		IntPart()
}

// CreateIntent prices the purchase from the stored plant and opens a
// PaymentIntent for it. The client confirms the intent directly with the
// gateway.
func (s *PaymentService) CreateIntent(ctx context.Context, plantID string, quantity int) (*ports.PaymentIntent, error) {
	plant, err := s.plants.FindByID(ctx, plantID)
	if err != nil {
		s.metrics.PaymentIntent("plant_not_found")
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	amount := AmountMinorUnits(quantity, plant.Price)
	intent, err := s.gateway.CreatePaymentIntent(ctx, amount, s.currency)
	if err != nil {
		s.metrics.PaymentIntent("gateway_error")
		s.logger.Error().Err(err).Str("plant_id", plantID).Int64("amount", amount).Msg("payment intent failed")
		return nil, fmt.Errorf("create payment intent: %w", errors.Join(domain.ErrPaymentGateway, err))
	}

	s.metrics.PaymentIntent("created")
	s.logger.Info().
		Str("plant_id", plantID).
		Str("intent_id", intent.ID).
		Int64("amount", amount).
		Msg("payment intent created")
	return intent, nil
}

// HandleWebhook verifies a gateway notification and, for succeeded intents,
// flags the matching orders as verified.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.gateway.VerifyWebhook(payload, signature)
	if err != nil {
		return fmt.Errorf("payment webhook: %w", errors.Join(domain.ErrInvalidSignature, err))
	}

	if event.Type != eventPaymentSucceeded {
		s.logger.Debug().Str("event_id", event.ID).Str("type", event.Type).Msg("webhook ignored")
		return nil
	}

	n, err := s.orders.MarkPaymentVerified(ctx, event.PaymentIntentID)
	if err != nil {
		return fmt.Errorf("payment webhook: %w", err)
	}
	if n == 0 {
		s.logger.Warn().Str("intent_id", event.PaymentIntentID).Msg("no order for succeeded payment yet")
	}
	return nil
}
