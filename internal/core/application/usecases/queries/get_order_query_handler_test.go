package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/user"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery(t *testing.T) {
	t.Run("requires_actor", func(t *testing.T) {
		_, err := queries.NewGetOrderQuery(services.Actor{Role: user.RoleCustomer}, kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires_order_id", func(t *testing.T) {
		_, err := queries.NewGetOrderQuery(customer, kernel.UUID{})

		require.Error(t, err)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var q queries.GetOrderQuery

		require.ErrorIs(t, q.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
	})
}

func TestGetOrderQueryHandler(t *testing.T) {
	t.Run("owner_reads_order", func(t *testing.T) {
		ctx := t.Context()
		o := newOrder(t, customer.ID)
		reader := &MockOrderReader{}
		reader.On("Get", ctx, o.ID()).Return(o, nil).Once()

		q, err := queries.NewGetOrderQuery(customer, o.ID())
		require.NoError(t, err)

		resp, err := queries.NewGetOrderQueryHandler(reader).Handle(ctx, q)

		require.NoError(t, err)
		assert.Same(t, o, resp.Order)
		reader.AssertExpectations(t)
	})

	t.Run("admin_reads_any_order", func(t *testing.T) {
		ctx := t.Context()
		o := newOrder(t, customer.ID)
		reader := &MockOrderReader{}
		reader.On("Get", ctx, o.ID()).Return(o, nil).Once()

		q, err := queries.NewGetOrderQuery(admin, o.ID())
		require.NoError(t, err)

		_, err = queries.NewGetOrderQueryHandler(reader).Handle(ctx, q)

		require.NoError(t, err)
	})

	t.Run("other_customer_is_denied", func(t *testing.T) {
		ctx := t.Context()
		o := newOrder(t, kernel.NewUUID())
		reader := &MockOrderReader{}
		reader.On("Get", ctx, o.ID()).Return(o, nil).Once()

		q, err := queries.NewGetOrderQuery(customer, o.ID())
		require.NoError(t, err)

		_, err = queries.NewGetOrderQueryHandler(reader).Handle(ctx, q)

		require.ErrorIs(t, err, errs.ErrAccessDenied)
	})

	t.Run("unassigned_agent_is_denied", func(t *testing.T) {
		ctx := t.Context()
		o := newOrder(t, customer.ID)
		reader := &MockOrderReader{}
		reader.On("Get", ctx, o.ID()).Return(o, nil).Once()

		q, err := queries.NewGetOrderQuery(agent, o.ID())
		require.NoError(t, err)

		_, err = queries.NewGetOrderQueryHandler(reader).Handle(ctx, q)

		require.ErrorIs(t, err, order.ErrNotAssignedToActor)
	})

	t.Run("missing_order_is_not_found", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		reader := &MockOrderReader{}
		reader.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id)).Once()

		q, err := queries.NewGetOrderQuery(admin, id)
		require.NoError(t, err)

		_, err = queries.NewGetOrderQueryHandler(reader).Handle(ctx, q)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
