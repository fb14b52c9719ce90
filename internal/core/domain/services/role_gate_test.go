package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/user"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)

func newTestOrder(t *testing.T, customerID kernel.UUID) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), "Green tea", kernel.MustMoney("4.20"), 2, "tea.png")
	require.NoError(t, err)
	loc, err := kernel.NewGeoPoint(35.6762, 139.6503)
	require.NoError(t, err)
	shipping, err := order.NewShippingInfo("1-1 Chiyoda, Tokyo", "+81 3 1234 5678", loc)
	require.NoError(t, err)
	payment, err := order.NewPaymentInfo("pay_1", "succeeded")
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), customerID, []order.Item{item}, shipping, payment,
		kernel.ZeroMoney(), kernel.ZeroMoney(), now)
	require.NoError(t, err)
	return o
}

func TestRoleGate_RoleTable(t *testing.T) {
	gate := services.NewRoleGate()
	customer := services.Actor{ID: kernel.NewUUID(), Role: user.RoleCustomer}
	admin := services.Actor{ID: kernel.NewUUID(), Role: user.RoleAdmin}
	agent := services.Actor{ID: kernel.NewUUID(), Role: user.RoleDeliveryAgent}

	tests := []struct {
		action  services.Action
		allowed user.Role
	}{
		{services.ActionCreateOrder, user.RoleCustomer},
		{services.ActionViewOwnOrders, user.RoleCustomer},
		{services.ActionListAllOrders, user.RoleAdmin},
		{services.ActionSetStatus, user.RoleAdmin},
		{services.ActionAssignOrder, user.RoleAdmin},
		{services.ActionListAvailable, user.RoleDeliveryAgent},
		{services.ActionListAssigned, user.RoleDeliveryAgent},
		{services.ActionListAllForAgent, user.RoleDeliveryAgent},
		{services.ActionAcceptOrder, user.RoleDeliveryAgent},
	}

	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			o := newTestOrder(t, customer.ID)
			for _, actor := range []services.Actor{customer, admin, agent} {
				err := gate.Check(actor, tt.action, o)
				if actor.Role == tt.allowed {
					require.NoError(t, err, actor.Role)
					continue
				}
				require.ErrorIs(t, err, errs.ErrAccessDenied, actor.Role)
				assert.False(t, gate.Authorize(actor, tt.action, o))
			}
		})
	}
}

func TestRoleGate_BlockedActorIsDeniedEverything(t *testing.T) {
	gate := services.NewRoleGate()
	agentID := kernel.NewUUID()
	o := newTestOrder(t, kernel.NewUUID())
	require.NoError(t, o.Assign(agentID, now))

	for _, role := range []user.Role{user.RoleCustomer, user.RoleAdmin, user.RoleDeliveryAgent} {
		blocked := services.Actor{ID: agentID, Role: role, Blocked: true}
		for a := services.ActionCreateOrder; a <= services.ActionAddNote; a++ {
			err := gate.Check(blocked, a, o)
			require.ErrorIs(t, err, services.ErrActorBlocked, a.String())
			require.ErrorIs(t, err, errs.ErrAccessDenied)
		}
	}
}

func TestRoleGate_OrderConditions(t *testing.T) {
	gate := services.NewRoleGate()
	customerID := kernel.NewUUID()
	admin := services.Actor{ID: kernel.NewUUID(), Role: user.RoleAdmin}
	agent := services.Actor{ID: kernel.NewUUID(), Role: user.RoleDeliveryAgent}
	other := services.Actor{ID: kernel.NewUUID(), Role: user.RoleDeliveryAgent}

	unassigned := func(t *testing.T) *order.Order { return newTestOrder(t, customerID) }
	assigned := func(t *testing.T) *order.Order {
		o := newTestOrder(t, customerID)
		require.NoError(t, o.Assign(agent.ID, now))
		return o
	}
	delivered := func(t *testing.T) *order.Order {
		o := assigned(t)
		require.NoError(t, o.SetStatus(order.Delivered, now))
		return o
	}
	cancelled := func(t *testing.T) *order.Order {
		o := unassigned(t)
		require.NoError(t, o.SetStatus(order.Cancelled, now))
		return o
	}
	requested := func(t *testing.T) *order.Order {
		o := assigned(t)
		require.NoError(t, o.RequestCompletion(agent.ID, now))
		return o
	}

	tests := []struct {
		name    string
		actor   services.Actor
		action  services.Action
		order   func(t *testing.T) *order.Order
		wantErr error
	}{
		{"admin sets status", admin, services.ActionSetStatus, unassigned, nil},
		{"admin cannot set status of delivered", admin, services.ActionSetStatus, delivered, order.ErrAlreadyTerminal},
		{"admin deletes delivered", admin, services.ActionDeleteOrder, delivered, nil},
		{"admin cannot delete in-flight", admin, services.ActionDeleteOrder, assigned, order.ErrOrderNotDeletable},
		{"admin assigns", admin, services.ActionAssignOrder, unassigned, nil},
		{"admin cannot assign delivered", admin, services.ActionAssignOrder, delivered, order.ErrAlreadyTerminal},
		{"agent accepts unassigned", agent, services.ActionAcceptOrder, unassigned, nil},
		{"agent cannot accept assigned", other, services.ActionAcceptOrder, assigned, order.ErrAlreadyAssigned},
		{"agent cannot accept cancelled", agent, services.ActionAcceptOrder, cancelled, order.ErrAlreadyTerminal},
		{"assignee updates status", agent, services.ActionAdvanceDeliveryStatus, assigned, nil},
		{"other agent cannot update status", other, services.ActionAdvanceDeliveryStatus, assigned, order.ErrNotAssignedToActor},
		{"assignee cannot update delivered", agent, services.ActionAdvanceDeliveryStatus, delivered, order.ErrAlreadyTerminal},
		{"assignee requests completion", agent, services.ActionRequestCompletion, assigned, nil},
		{"no duplicate request", agent, services.ActionRequestCompletion, requested, order.ErrDuplicateCompletionRequest},
		{"other agent cannot request", other, services.ActionRequestCompletion, assigned, order.ErrNotAssignedToActor},
		{"assignee adds note", agent, services.ActionAddNote, delivered, nil},
		{"other agent cannot add note", other, services.ActionAddNote, assigned, order.ErrNotAssignedToActor},
		{"admin confirms requested", admin, services.ActionConfirmDelivery, requested, nil},
		{"admin cannot confirm unrequested", admin, services.ActionConfirmDelivery, assigned, order.ErrNoPendingCompletionRequest},
		{"admin cannot confirm delivered", admin, services.ActionConfirmDelivery, delivered, order.ErrAlreadyTerminal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gate.Check(tt.actor, tt.action, tt.order(t))

			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRoleGate_ViewOrder(t *testing.T) {
	gate := services.NewRoleGate()
	owner := services.Actor{ID: kernel.NewUUID(), Role: user.RoleCustomer}
	stranger := services.Actor{ID: kernel.NewUUID(), Role: user.RoleCustomer}
	admin := services.Actor{ID: kernel.NewUUID(), Role: user.RoleAdmin}
	agent := services.Actor{ID: kernel.NewUUID(), Role: user.RoleDeliveryAgent}
	otherAgent := services.Actor{ID: kernel.NewUUID(), Role: user.RoleDeliveryAgent}

	o := newTestOrder(t, owner.ID)
	require.NoError(t, o.Assign(agent.ID, now))

	assert.True(t, gate.Authorize(owner, services.ActionViewOrder, o))
	assert.True(t, gate.Authorize(admin, services.ActionViewOrder, o))
	assert.True(t, gate.Authorize(agent, services.ActionViewOrder, o))

	require.ErrorIs(t, gate.Check(stranger, services.ActionViewOrder, o), services.ErrNotOrderOwner)
	require.ErrorIs(t, gate.Check(otherAgent, services.ActionViewOrder, o), errs.ErrAccessDenied)
	require.ErrorIs(t, gate.Check(stranger, services.ActionViewOwnOrders, o), services.ErrNotOrderOwner)
}

func TestRoleGate_MissingOrder(t *testing.T) {
	gate := services.NewRoleGate()
	admin := services.Actor{ID: kernel.NewUUID(), Role: user.RoleAdmin}

	require.ErrorIs(t, gate.Check(admin, services.ActionConfirmDelivery, nil), errs.ErrValueIsRequired)
	require.NoError(t, gate.Check(admin, services.ActionListAllOrders, nil))
	require.ErrorIs(t, gate.Check(admin, services.ActionUnknown, nil), errs.ErrAccessDenied)
}

func TestActorFromUser(t *testing.T) {
	u, err := user.RestoreUser(kernel.NewUUID(), "Ada", "ada@example.com", user.RoleAdmin, true)
	require.NoError(t, err)

	a := services.ActorFromUser(u)

	assert.True(t, a.ID.IsEqual(u.ID()))
	assert.Equal(t, user.RoleAdmin, a.Role)
	assert.True(t, a.Blocked)
}
