package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"picklestore/internal/domain/model"
)

type AdminOrderListFilter struct {
	Page   int
	Limit  int
	Status string
	UserID *int64
}

// OrderWithItemCount backs the order-history listing.
type OrderWithItemCount struct {
	model.Order
	ItemCount int64 `json:"item_count"`
}

// Aggregates for the admin dashboard.
type OrderStats struct {
	TotalOrders  int64
	TotalRevenue decimal.Decimal
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64) ([]OrderWithItemCount, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	Delete(ctx context.Context, orderID int64) error

	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]OrderWithItemCount, int64, error)
	// Stats ignores cancelled orders when summing revenue.
	Stats(ctx context.Context) (OrderStats, error)
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	DeleteByOrderID(ctx context.Context, orderID int64) error
}
