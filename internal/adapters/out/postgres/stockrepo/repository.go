// Package stockrepo keeps the per-product stock counters of the inventory
// catalog.
package stockrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductStockDTO is one row of product_stocks. The check constraint backs the
// conditional update in Decrement.
type ProductStockDTO struct {
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Stock     int       `gorm:"not null;check:stock >= 0"`
}

// TableName overrides the GORM table name.
func (ProductStockDTO) TableName() string {
	return "product_stocks"
}

// GormStockRepository implements ports.StockRepository.
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository binds the repository to db, which may be a transaction.
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// Decrement is a single conditional update, so concurrent reservations can
// never drive stock below zero.
func (r *GormStockRepository) Decrement(ctx context.Context, productID kernel.UUID, quantity int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&ProductStockDTO{}).
		Where("product_id = ? AND stock >= ?", productID.Bytes(), quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return false, errs.NewDependencyFailedErrorWithCause("postgres", result.Error)
	}
	if result.RowsAffected == 1 {
		return true, nil
	}

	if _, err := r.Available(ctx, productID); err != nil {
		return false, err
	}
	return false, nil
}

// Increment returns quantity units to stock, for example when an order is
// cancelled. Unknown products are reported as not found.
func (r *GormStockRepository) Increment(ctx context.Context, productID kernel.UUID, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&ProductStockDTO{}).
		Where("product_id = ?", productID.Bytes()).
		Update("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return errs.NewDependencyFailedErrorWithCause("postgres", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", productID.String())
	}
	return nil
}

// Available returns the units currently in stock.
func (r *GormStockRepository) Available(ctx context.Context, productID kernel.UUID) (int, error) {
	var dto ProductStockDTO
	if err := r.db.WithContext(ctx).First(&dto, "product_id = ?", productID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errs.NewObjectNotFoundError("product", productID.String())
		}
		return 0, errs.NewDependencyFailedErrorWithCause("postgres", err)
	}
	return dto.Stock, nil
}

// Set creates or overwrites the stock counter of a product.
func (r *GormStockRepository) Set(ctx context.Context, productID kernel.UUID, stock int) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	if stock < 0 {
		return errs.NewValueIsOutOfRangeError("stock", stock, 0, "unbounded")
	}

	dto := ProductStockDTO{ProductID: productID.Bytes(), Stock: stock}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"stock"}),
		}).
		Create(&dto).Error
	if err != nil {
		return errs.NewDependencyFailedErrorWithCause("postgres", err)
	}
	return nil
}
