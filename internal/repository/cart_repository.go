package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"picklestore/internal/domain/model"
)

type CartRepository interface {
	GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error)
	FindByUserID(ctx context.Context, userID int64) (model.Cart, error)
	// Clear deletes every item in the cart.
	Clear(ctx context.Context, cartID int64) error
}

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)
	// Same pickle adds up; new pickles get the given price snapshot.
	UpsertAdd(ctx context.Context, cartID int64, pickleID int64, addQty int64, unitPriceSnapshot decimal.Decimal) error
	SetQuantity(ctx context.Context, cartID int64, pickleID int64, qty int64) error
	DeleteByPickle(ctx context.Context, cartID int64, pickleID int64) error
	// ReplaceAll swaps the whole item list in one shot (last write wins).
	ReplaceAll(ctx context.Context, cartID int64, items []model.CartItem) error
}
