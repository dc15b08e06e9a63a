package repository

import (
	"context"

	"picklestore/internal/domain/model"
)

type InventoryRepository interface {
	// Set the stock to an absolute value and record the adjustment.
	SetStockWithAdjustment(ctx context.Context, adminUserID int64, pickleID int64, newStock int64, reason string) error

	// Decrement only when enough stock remains. Returns false when the
	// conditional update matched no row, i.e. the pickle would oversell.
	DecreaseStockIfEnough(ctx context.Context, pickleID int64, qty int64) (bool, error)

	// Stock restore (order cancellation).
	IncreaseStock(ctx context.Context, pickleID int64, qty int64) error

	CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error
}
