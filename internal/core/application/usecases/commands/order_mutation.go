package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// MaxConflictRetries bounds how often a command reloads an order after losing
// a conditional write.
const MaxConflictRetries = 3

type saveFunc func(repo ports.OrderRepository, ctx context.Context, o *order.Order) error

var (
	saveOrder   saveFunc = ports.OrderRepository.Update
	removeOrder saveFunc = ports.OrderRepository.Delete
)

// mutateOrder loads an order, applies a change and writes it back in one unit
// of work. When the write loses against a concurrent one the whole attempt is
// repeated on a fresh load, so apply sees the winner's state and its checks
// decide the outcome.
func mutateOrder[U OrderUoW](
	ctx context.Context,
	create func() U,
	id kernel.UUID,
	apply func(uow U, o *order.Order) error,
	save saveFunc,
) (*order.Order, error) {
	var err error
	for range MaxConflictRetries {
		var o *order.Order
		o, err = mutateOrderOnce(ctx, create, id, apply, save)
		if !errors.Is(err, order.ErrConcurrentModification) {
			return o, err
		}
	}
	return nil, err
}

func mutateOrderOnce[U OrderUoW](
	ctx context.Context,
	create func() U,
	id kernel.UUID,
	apply func(uow U, o *order.Order) error,
	save saveFunc,
) (*order.Order, error) {
	uow := create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = apply(uow, o); err != nil {
		return nil, err
	}

	if err = save(repo, ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func now() time.Time {
	return time.Now().UTC()
}

func newEvent(eventType ports.EventType, o *order.Order, actorID kernel.UUID) ports.Event {
	recipients := []kernel.UUID{o.CustomerID()}
	if agent := o.AssignedTo(); agent != nil && !agent.IsEqual(actorID) {
		recipients = append(recipients, *agent)
	}
	return ports.Event{
		Type:       eventType,
		OrderID:    o.ID(),
		ActorID:    actorID,
		Recipients: recipients,
		Status:     o.Status().String(),
		OccurredAt: now(),
	}
}
