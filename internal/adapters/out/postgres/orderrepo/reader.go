package orderrepo

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormOrderReader implements ports.OrderReader outside any transaction.
type GormOrderReader struct {
	db *gorm.DB
}

// NewGormOrderReader creates a reader over the connection pool.
func NewGormOrderReader(db *gorm.DB) *GormOrderReader {
	return &GormOrderReader{db: db}
}

// Get loads a single order.
func (r *GormOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return NewGormOrderRepository(r.db).Get(ctx, id)
}

// List returns the orders matching filter, newest first. Ties on creation time
// are broken by ID so pages stay stable.
func (r *GormOrderReader) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := applyFilter(r.db.WithContext(ctx), filter).
		Order("created_at DESC").
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, errs.NewDependencyFailedErrorWithCause("postgres", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func applyFilter(q *gorm.DB, f ports.OrderFilter) *gorm.DB {
	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", f.CustomerID.Bytes())
	}
	if f.AssignedTo != nil {
		q = q.Where("assigned_to = ?", f.AssignedTo.Bytes())
	}
	if f.Unassigned {
		q = q.Where("assigned_to IS NULL")
	}
	if len(f.ExcludeStatuses) > 0 {
		q = q.Where("NOT (status = ANY(?))", pq.Array(statusStrings(f.ExcludeStatuses)))
	}
	if f.CompletionRequested != nil {
		q = q.Where("completion_requested = ?", *f.CompletionRequested)
	}
	if f.RequestedBefore != nil {
		q = q.Where("completion_requested_at < ?", *f.RequestedBefore)
	}
	return q
}
