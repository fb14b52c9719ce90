package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ErrInsufficientStock is returned by Reserve when a product cannot cover the
// requested quantity.
var ErrInsufficientStock = errs.NewDependencyFailedError("inventory: insufficient stock")

// StockLine is a quantity of one product.
type StockLine struct {
	ProductID kernel.UUID
	Quantity  int
}

// LinesFromItems turns order items into stock lines.
func LinesFromItems(items []order.Item) []StockLine {
	lines := make([]StockLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, StockLine{ProductID: it.ProductID(), Quantity: it.Quantity()})
	}
	return lines
}

// InventoryLedger reserves stock for new orders and gives it back when an
// order is cancelled.
//
// Business rules:
//   - Each product is decremented with a single compare-and-decrement, so two
//     orders can never both see enough stock and overdraw it
//   - Lines for the same product are merged, and products are processed in a
//     stable order so concurrent reservations lock rows in the same sequence
//   - A failed reservation leaves stock unchanged
type InventoryLedger struct{}

// NewInventoryLedger creates the ledger.
func NewInventoryLedger() InventoryLedger {
	return InventoryLedger{}
}

// Reserve decrements stock for every line or for none. Unknown products fail
// with errs.ObjectNotFoundError and short stock with ErrInsufficientStock.
//
// Reserve undoes its own decrements on failure, which keeps it correct for
// stores without transactions; inside a unit of work the rollback covers the
// same ground.
func (l InventoryLedger) Reserve(ctx context.Context, stock ports.StockRepository, lines []StockLine) error {
	merged, err := mergeLines(lines)
	if err != nil {
		return err
	}

	reserved := make([]StockLine, 0, len(merged))
	for _, line := range merged {
		ok, err := stock.Decrement(ctx, line.ProductID, line.Quantity)
		if err == nil && !ok {
			err = fmt.Errorf("%w: product %s, requested %d", ErrInsufficientStock, line.ProductID, line.Quantity)
		}
		if err != nil {
			return errors.Join(err, l.release(ctx, stock, reserved))
		}
		reserved = append(reserved, line)
	}
	return nil
}

// Release returns reserved stock.
func (l InventoryLedger) Release(ctx context.Context, stock ports.StockRepository, lines []StockLine) error {
	merged, err := mergeLines(lines)
	if err != nil {
		return err
	}
	return l.release(ctx, stock, merged)
}

// Available returns the units in stock for productID.
func (l InventoryLedger) Available(ctx context.Context, stock ports.StockRepository, productID kernel.UUID) (int, error) {
	return stock.Available(ctx, productID)
}

func (l InventoryLedger) release(ctx context.Context, stock ports.StockRepository, lines []StockLine) error {
	var errList []error
	for _, line := range lines {
		if err := stock.Increment(ctx, line.ProductID, line.Quantity); err != nil {
			errList = append(errList, fmt.Errorf("release %s: %w", line.ProductID, err))
		}
	}
	return errors.Join(errList...)
}

func mergeLines(lines []StockLine) ([]StockLine, error) {
	totals := make(map[string]StockLine, len(lines))
	for _, line := range lines {
		if err := line.ProductID.Validate(); err != nil {
			return nil, err
		}
		if line.Quantity <= 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"quantity", fmt.Errorf("%d is not greater than 0", line.Quantity),
			)
		}
		key := line.ProductID.String()
		acc := totals[key]
		acc.ProductID = line.ProductID
		acc.Quantity += line.Quantity
		totals[key] = acc
	}

	merged := make([]StockLine, 0, len(totals))
	for _, line := range totals {
		merged = append(merged, line)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].ProductID.String() < merged[j].ProductID.String()
	})
	return merged, nil
}
