package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/user"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderReader) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

var (
	placedAt = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

	customer = services.Actor{ID: kernel.NewUUID(), Role: user.RoleCustomer}
	admin    = services.Actor{ID: kernel.NewUUID(), Role: user.RoleAdmin}
	agent    = services.Actor{ID: kernel.NewUUID(), Role: user.RoleDeliveryAgent}
)

// newOrder places an order worth 31.39 for customerID.
func newOrder(t *testing.T, customerID kernel.UUID) *order.Order {
	t.Helper()

	item, err := order.NewItem(kernel.NewUUID(), "Ceramic mug", kernel.MustMoney("12.00"), 2, "")
	require.NoError(t, err)
	loc, err := kernel.NewGeoPoint(40.4168, -3.7038)
	require.NoError(t, err)
	shipping, err := order.NewShippingInfo("Calle Mayor 1, Madrid", "+34 600 000 000", loc)
	require.NoError(t, err)
	payment, err := order.NewPaymentInfo("pi_test", "succeeded")
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), customerID, []order.Item{item}, shipping, payment,
		kernel.MustMoney("2.40"), kernel.MustMoney("4.99"), placedAt,
	)
	require.NoError(t, err)
	return o
}
