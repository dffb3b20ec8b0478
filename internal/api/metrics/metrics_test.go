package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	var r Recorder

	orders := testutil.ToFloat64(OrdersPlacedTotal)
	r.OrderPlaced()
	assert.Equal(t, orders+1, testutil.ToFloat64(OrdersPlacedTotal))

	created := testutil.ToFloat64(PaymentIntentsTotal.WithLabelValues("created"))
	r.PaymentIntent("created")
	assert.Equal(t, created+1, testutil.ToFloat64(PaymentIntentsTotal.WithLabelValues("created")))

	decreases := testutil.ToFloat64(InventoryAdjustmentsTotal.WithLabelValues("decrease"))
	r.InventoryAdjusted("decrease")
	r.InventoryAdjusted("decrease")
	assert.Equal(t, decreases+2, testutil.ToFloat64(InventoryAdjustmentsTotal.WithLabelValues("decrease")))
}
