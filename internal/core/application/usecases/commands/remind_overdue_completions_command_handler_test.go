package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/user"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
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

func overdueFilter(notBefore time.Time) any {
	return mock.MatchedBy(func(f ports.OrderFilter) bool {
		return f.CompletionRequested != nil && *f.CompletionRequested &&
			f.RequestedBefore != nil && !f.RequestedBefore.Before(notBefore) &&
			len(f.ExcludeStatuses) == 2
	})
}

func TestNewRemindOverdueCompletionsCommand(t *testing.T) {
	_, err := commands.NewRemindOverdueCompletionsCommand(0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	cmd, err := commands.NewRemindOverdueCompletionsCommand(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cmd.OlderThan())
}

func TestRemindOverdueCompletionsCommandHandler(t *testing.T) {
	t.Run("notifies_admins_per_overdue_order", func(t *testing.T) {
		ctx := t.Context()
		o := assignedOrder(t)
		require.NoError(t, o.RequestCompletion(agent.ID, placedAt))

		adminUser, err := user.NewUser(admin.ID, "Ops", "ops@example.com", user.RoleAdmin)
		require.NoError(t, err)

		reader := &MockOrderReader{}
		users := &MockUserRepository{}
		notifier := &MockNotifier{}
		reader.On("List", ctx, overdueFilter(time.Now().Add(-time.Hour))).Return([]*order.Order{o}, nil).Once()
		users.On("ListByRole", ctx, user.RoleAdmin).Return([]*user.User{adminUser}, nil).Once()
		notifier.On("Notify", ctx, mock.MatchedBy(func(e ports.Event) bool {
			return e.Type == ports.EventCompletionOverdue &&
				e.OrderID.IsEqual(o.ID()) &&
				e.ActorID.IsEqual(agent.ID) &&
				len(e.Recipients) == 1 && e.Recipients[0].IsEqual(admin.ID) &&
				e.Attributes["requestedAt"] == placedAt.Format(time.RFC3339)
		})).Once()

		cmd, err := commands.NewRemindOverdueCompletionsCommand(time.Hour)
		require.NoError(t, err)
		handler := commands.NewRemindOverdueCompletionsCommandHandler(reader, users, notifier)

		count, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 1, count)
		reader.AssertExpectations(t)
		users.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("nothing_overdue_skips_admin_lookup", func(t *testing.T) {
		ctx := t.Context()
		reader := &MockOrderReader{}
		users := &MockUserRepository{}
		notifier := &MockNotifier{}
		reader.On("List", ctx, mock.Anything).Return([]*order.Order{}, nil).Once()

		cmd, err := commands.NewRemindOverdueCompletionsCommand(time.Hour)
		require.NoError(t, err)
		handler := commands.NewRemindOverdueCompletionsCommandHandler(reader, users, notifier)

		count, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Zero(t, count)
		users.AssertNotCalled(t, "ListByRole", mock.Anything, mock.Anything)
		notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})

	t.Run("reader_error_propagates", func(t *testing.T) {
		ctx := t.Context()
		readErr := errors.New("db unavailable")
		reader := &MockOrderReader{}
		reader.On("List", ctx, mock.Anything).Return(nil, readErr).Once()

		cmd, err := commands.NewRemindOverdueCompletionsCommand(time.Hour)
		require.NoError(t, err)
		handler := commands.NewRemindOverdueCompletionsCommandHandler(reader, &MockUserRepository{}, &MockNotifier{})

		_, err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, readErr)
	})

	t.Run("zero_value_command_is_rejected", func(t *testing.T) {
		handler := commands.NewRemindOverdueCompletionsCommandHandler(&MockOrderReader{}, &MockUserRepository{}, &MockNotifier{})

		_, err := handler.Handle(t.Context(), commands.RemindOverdueCompletionsCommand{})

		require.ErrorIs(t, err, commands.ErrRemindOverdueCompletionsCommandIsNotConstructed)
	})
}
