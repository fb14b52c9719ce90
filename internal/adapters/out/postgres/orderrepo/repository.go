package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository. Update and Delete only
// touch the row when its version still matches the loaded aggregate.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository binds the repository to db, which may be a transaction.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts a new order at version 1 and records that version on the aggregate.
// A duplicate ID is reported as a state conflict.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewStateConflictErrorWithCause("order", "order already exists", err)
		}
		return errs.NewDependencyFailedErrorWithCause("postgres", err)
	}

	aggregate.MarkPersisted(dto.Version)
	return nil
}

// Update writes the aggregate back only if the stored version still equals the
// one it was loaded with, then bumps the version on both sides.
// Returns order.ErrConcurrentModification when another writer got there first.
//
// Example:
//
//	o, _ := repo.Get(ctx, id)
//	_ = o.Assign(agentID, time.Now())
//	if err := repo.Update(ctx, o); errors.Is(err, order.ErrConcurrentModification) {
//	    // reload and retry
//	}
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	loaded := aggregate.Version()
	dto := fromDomain(aggregate)
	dto.Version = loaded + 1

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, loaded).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return errs.NewDependencyFailedErrorWithCause("postgres", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.missOrConflict(ctx, aggregate.ID())
	}

	aggregate.MarkPersisted(dto.Version)
	return nil
}

// Get loads an order by ID, returning errs.ErrObjectNotFound when it is absent.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, errs.NewDependencyFailedErrorWithCause("postgres", err)
	}

	return toDomain(dto)
}

// Delete removes the order under the same version check as Update.
func (r *GormOrderRepository) Delete(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND version = ?", aggregate.ID().Bytes(), aggregate.Version()).
		Delete(&OrderDTO{})
	if result.Error != nil {
		return errs.NewDependencyFailedErrorWithCause("postgres", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.missOrConflict(ctx, aggregate.ID())
	}
	return nil
}

// missOrConflict explains a conditional write that matched no row.
func (r *GormOrderRepository) missOrConflict(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return errs.NewDependencyFailedErrorWithCause("postgres", err)
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return order.ErrConcurrentModification
}
