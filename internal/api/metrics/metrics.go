// Package metrics defines and registers the custom Prometheus metrics of the
// plantNet API. HTTP request metrics come from the echoprometheus middleware;
// this package only holds the business counters.
//
// Metrics are registered with the default registry on package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "plantnet"

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersPlacedTotal counts orders stored by the order endpoint.
var OrdersPlacedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of orders recorded.",
	},
)

// PaymentIntentsTotal counts payment intent attempts.
// Label:
//   - result: "created", "plant_not_found" or "gateway_error"
var PaymentIntentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_intents_total",
		Help:      "Total number of payment intent requests, by result.",
	},
	[]string{"result"},
)

// ── Inventory metrics ─────────────────────────────────────────────────────────

// InventoryAdjustmentsTotal counts quantity adjustments.
// Label:
//   - direction: "increase" or "decrease"
var InventoryAdjustmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inventory_adjustments_total",
		Help:      "Total number of plant quantity adjustments, by direction.",
	},
	[]string{"direction"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// EmailsTotal counts email delivery attempts.
// Label:
//   - result: "sent", "failed" or "dropped" (queue full)
var EmailsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_total",
		Help:      "Total number of notification emails attempted, by result.",
	},
	[]string{"result"},
)

// EmailQueueDepth tracks the number of emails waiting in each dispatcher worker.
// Label:
//   - worker_id: numeric worker index
var EmailQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "email_queue_depth",
		Help:      "Current number of emails pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// EmailDeliveryDuration measures a single SMTP delivery.
var EmailDeliveryDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "email_delivery_duration_seconds",
		Help:      "Duration of a single email delivery.",
		Buckets:   prometheus.DefBuckets,
	},
)

// Recorder exposes the business counters to the service layer.
type Recorder struct{}

func (Recorder) OrderPlaced() { OrdersPlacedTotal.Inc() }

func (Recorder) PaymentIntent(result string) {
	PaymentIntentsTotal.WithLabelValues(result).Inc()
}

func (Recorder) InventoryAdjusted(direction string) {
	InventoryAdjustmentsTotal.WithLabelValues(direction).Inc()
}
