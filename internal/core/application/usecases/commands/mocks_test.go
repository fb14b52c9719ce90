package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/user"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockStockRepository struct{ mock.Mock }

func (m *MockStockRepository) Decrement(ctx context.Context, productID kernel.UUID, quantity int) (bool, error) {
	args := m.Called(ctx, productID, quantity)
	return args.Bool(0), args.Error(1)
}

func (m *MockStockRepository) Increment(ctx context.Context, productID kernel.UUID, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

func (m *MockStockRepository) Available(ctx context.Context, productID kernel.UUID) (int, error) {
	args := m.Called(ctx, productID)
	return args.Int(0), args.Error(1)
}

func (m *MockStockRepository) Set(ctx context.Context, productID kernel.UUID, stock int) error {
	args := m.Called(ctx, productID, stock)
	return args.Error(0)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role user.Role) ([]*user.User, error) {
	args := m.Called(ctx, role)
	users, _ := args.Get(0).([]*user.User)
	return users, args.Error(1)
}

// MockUoW satisfies every unit of work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) StockRepository() ports.StockRepository {
	args := m.Called()
	return args.Get(0).(ports.StockRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockInventoryUoWFactory struct{ mock.Mock }

func (m *MockInventoryUoWFactory) Create() commands.InventoryUoW {
	args := m.Called()
	return args.Get(0).(commands.InventoryUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, event ports.Event) {
	m.Called(ctx, event)
}

func eventOfType(t ports.EventType) any {
	return mock.MatchedBy(func(e ports.Event) bool { return e.Type == t })
}

var (
	placedAt = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

	customer = services.Actor{ID: kernel.NewUUID(), Role: user.RoleCustomer}
	admin    = services.Actor{ID: kernel.NewUUID(), Role: user.RoleAdmin}
	agent    = services.Actor{ID: kernel.NewUUID(), Role: user.RoleDeliveryAgent}
)

func newItem(t *testing.T, productID kernel.UUID, quantity int) order.Item {
	t.Helper()
	it, err := order.NewItem(productID, "Ceramic mug", kernel.MustMoney("12.00"), quantity, "mug.png")
	require.NoError(t, err)
	return it
}

func newShipping(t *testing.T) order.ShippingInfo {
	t.Helper()
	loc, err := kernel.NewGeoPoint(40.4168, -3.7038)
	require.NoError(t, err)
	s, err := order.NewShippingInfo("Calle Mayor 1, Madrid", "+34 600 000 000", loc)
	require.NoError(t, err)
	return s
}

func newPayment(t *testing.T) order.PaymentInfo {
	t.Helper()
	p, err := order.NewPaymentInfo("pi_test", "succeeded")
	require.NoError(t, err)
	return p
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), customer.ID,
		[]order.Item{newItem(t, kernel.NewUUID(), 2)},
		newShipping(t), newPayment(t),
		kernel.MustMoney("2.40"), kernel.MustMoney("4.99"), placedAt,
	)
	require.NoError(t, err)
	return o
}

func assignedOrder(t *testing.T) *order.Order {
	t.Helper()
	o := newOrder(t)
	require.NoError(t, o.Assign(agent.ID, placedAt))
	return o
}

// expectLoad primes the begin-and-load half of one mutation attempt.
func expectLoad(ctx context.Context, uow *MockUoW, repo *MockOrderRepository, o *order.Order) []*mock.Call {
	return []*mock.Call{
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
	}
}

// expectSave primes a successful update, commit and deferred rollback.
func expectSave(ctx context.Context, uow *MockUoW, repo *MockOrderRepository, o *order.Order) []*mock.Call {
	return []*mock.Call{
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	}
}

func inOrder(groups ...[]*mock.Call) {
	var calls []*mock.Call
	for _, g := range groups {
		calls = append(calls, g...)
	}
	mock.InOrder(calls...)
}
