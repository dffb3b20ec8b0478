package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/plantnet/plantnet-server/internal/core/domain"
	"github.com/plantnet/plantnet-server/internal/core/ports"
)

// reserveKey claims an Idempotency-Key for scope. An empty key or a nil store
// disables the check; store outages are logged and the request proceeds.
// The returned release frees the claim and must be called when the guarded
// work fails, so a retry with the same key is accepted.
func reserveKey(ctx context.Context, store ports.IdempotencyStore, log zerolog.Logger, scope, key string) (release func(), err error) {
	noop := func() {}
	if key == "" || store == nil {
		return noop, nil
	}
	fresh, err := store.Reserve(ctx, scope, key)
	if err != nil {
		log.Warn().Err(err).Str("scope", scope).Str("key", key).Msg("idempotency check failed, processing anyway")
		return noop, nil
	}
	if !fresh {
		log.Info().Str("scope", scope).Str("key", key).Msg("replayed request rejected")
		return noop, domain.ErrDuplicateRequest
	}
	return func() {
		if err := store.Release(context.WithoutCancel(ctx), scope, key); err != nil {
			log.Warn().Err(err).Str("scope", scope).Str("key", key).Msg("failed to release idempotency key")
		}
	}, nil
}

type nopMetrics struct{}

func (nopMetrics) OrderPlaced()             {}
func (nopMetrics) PaymentIntent(string)     {}
func (nopMetrics) InventoryAdjusted(string) {}

func metricsOrNop(m ports.Metrics) ports.Metrics {
	if m == nil {
		return nopMetrics{}
	}
	return m
}
