package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/user"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUser(t *testing.T, role user.Role, blocked bool) *user.User {
	t.Helper()
	u, err := user.RestoreUser(kernel.NewUUID(), "Sam Rider", "sam@example.com", role, blocked)
	require.NoError(t, err)
	return u
}

func TestAssignOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := newOrder(t)
	rider := newUser(t, user.RoleDeliveryAgent, false)
	cmd, err := commands.NewAssignOrderCommand(admin, o.ID(), rider.ID())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	users := new(MockUserRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)
	inOrder(
		expectLoad(ctx, uow, repo, o),
		[]*mock.Call{
			uow.On("UserRepository").Return(users).Once(),
			users.On("Get", ctx, rider.ID()).Return(rider, nil).Once(),
		},
		expectSave(ctx, uow, repo, o),
		[]*mock.Call{notifier.On("Notify", ctx, mock.MatchedBy(func(e ports.Event) bool {
			return e.Type == ports.EventOrderAssigned && len(e.Recipients) == 2
		})).Return().Once()},
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignOrderCommandHandler(factory, notifier)
	got, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, got.IsAssignedTo(rider.ID()))
	users.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestAssignOrderCommandHandler_Handle_InvalidAgent(t *testing.T) {
	tests := []struct {
		name  string
		agent *user.User
	}{
		{"customer", newUser(t, user.RoleCustomer, false)},
		{"admin", newUser(t, user.RoleAdmin, false)},
		{"blocked agent", newUser(t, user.RoleDeliveryAgent, true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			o := newOrder(t)
			cmd, err := commands.NewAssignOrderCommand(admin, o.ID(), tt.agent.ID())
			require.NoError(t, err)

			repo := new(MockOrderRepository)
			users := new(MockUserRepository)
			uow := new(MockUoW)
			inOrder(
				expectLoad(ctx, uow, repo, o),
				[]*mock.Call{
					uow.On("UserRepository").Return(users).Once(),
					users.On("Get", ctx, tt.agent.ID()).Return(tt.agent, nil).Once(),
					uow.On("Rollback", ctx).Return(nil).Once(),
				},
			)
			factory := new(MockUoWFactory)
			factory.On("Create").Return(uow).Once()

			h := commands.NewAssignOrderCommandHandler(factory, new(MockNotifier))
			_, err = h.Handle(ctx, cmd)

			require.ErrorIs(t, err, commands.ErrInvalidAgent)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.False(t, o.IsAssigned())
		})
	}
}

func TestAssignOrderCommandHandler_Handle_UnknownAgent(t *testing.T) {
	ctx := t.Context()
	o := newOrder(t)
	agentID := kernel.NewUUID()
	cmd, err := commands.NewAssignOrderCommand(admin, o.ID(), agentID)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	users := new(MockUserRepository)
	uow := new(MockUoW)
	inOrder(
		expectLoad(ctx, uow, repo, o),
		[]*mock.Call{
			uow.On("UserRepository").Return(users).Once(),
			users.On("Get", ctx, agentID).Return(nil, errs.NewObjectNotFoundError("agentID", agentID)).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		},
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignOrderCommandHandler(factory, new(MockNotifier))
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestAssignOrderCommandHandler_Handle_AlreadyAssigned(t *testing.T) {
	ctx := t.Context()
	o := assignedOrder(t)
	rider := newUser(t, user.RoleDeliveryAgent, false)
	cmd, err := commands.NewAssignOrderCommand(admin, o.ID(), rider.ID())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	users := new(MockUserRepository)
	uow := new(MockUoW)
	inOrder(
		expectLoad(ctx, uow, repo, o),
		[]*mock.Call{
			uow.On("UserRepository").Return(users).Once(),
			users.On("Get", ctx, rider.ID()).Return(rider, nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		},
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignOrderCommandHandler(factory, new(MockNotifier))
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStateConflict)
	assert.True(t, o.IsAssignedTo(agent.ID))
}

func TestAssignOrderCommandHandler_Handle_OnlyAdmins(t *testing.T) {
	ctx := t.Context()
	o := newOrder(t)
	cmd, err := commands.NewAssignOrderCommand(agent, o.ID(), agent.ID)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	inOrder(
		expectLoad(ctx, uow, repo, o),
		[]*mock.Call{uow.On("Rollback", ctx).Return(nil).Once()},
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignOrderCommandHandler(factory, new(MockNotifier))
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrAccessDenied)
	uow.AssertNotCalled(t, "UserRepository")
}
