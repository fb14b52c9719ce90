package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var placedAt = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newItem(t *testing.T, quantity int) order.Item {
	t.Helper()
	it, err := order.NewItem(kernel.NewUUID(), "Espresso beans 1kg", kernel.MustMoney("24.90"), quantity, "img/beans.png")
	require.NoError(t, err)
	return it
}

func newShipping(t *testing.T) order.ShippingInfo {
	t.Helper()
	loc, err := kernel.NewGeoPoint(48.8566, 2.3522)
	require.NoError(t, err)
	s, err := order.NewShippingInfo("12 Rue de Rivoli, Paris", "+33 1 23 45 67 89", loc)
	require.NoError(t, err)
	return s
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	payment, err := order.NewPaymentInfo("pi_3N8", "succeeded")
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		[]order.Item{newItem(t, 2)},
		newShipping(t),
		payment,
		kernel.MustMoney("8.96"),
		kernel.MustMoney("5"),
		placedAt,
	)
	require.NoError(t, err)
	return o
}

func assignedOrder(t *testing.T, agentID kernel.UUID) *order.Order {
	t.Helper()
	o := newOrder(t)
	require.NoError(t, o.Assign(agentID, placedAt.Add(time.Hour)))
	return o
}
