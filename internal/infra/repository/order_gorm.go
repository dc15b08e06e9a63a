package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"picklestore/internal/domain/model"
	repo "picklestore/internal/repository"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

// Order history, newest first, with per-order item counts.
func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID int64) ([]repo.OrderWithItemCount, error) {
	var rows []repo.OrderWithItemCount

	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("orders.*, COUNT(order_items.id) AS item_count").
		Joins("LEFT JOIN order_items ON order_items.order_id = orders.id").
		Where("orders.user_id = ?", userID).
		Group("orders.id").
		Order("orders.created_at desc").
		Order("orders.id desc").
		Find(&rows).Error
	if err != nil {
		return []repo.OrderWithItemCount{}, err
	}
	return rows, nil
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return 0, err
	}
	return order.ID, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) Delete(ctx context.Context, orderID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Order{}, orderID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]repo.OrderWithItemCount, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}

	q := r.db.WithContext(ctx).Model(&model.Order{})
	if f.Status != "" {
		q = q.Where("orders.status = ?", f.Status)
	}
	if f.UserID != nil {
		q = q.Where("orders.user_id = ?", *f.UserID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return []repo.OrderWithItemCount{}, 0, err
	}

	var rows []repo.OrderWithItemCount
	offset := (f.Page - 1) * f.Limit
	err := q.
		Select("orders.*, COUNT(order_items.id) AS item_count").
		Joins("LEFT JOIN order_items ON order_items.order_id = orders.id").
		Group("orders.id").
		Order("orders.created_at desc").
		Order("orders.id desc").
		Limit(f.Limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return []repo.OrderWithItemCount{}, 0, err
	}
	return rows, total, nil
}

// Revenue excludes cancelled orders.
func (r *OrderGormRepository) Stats(ctx context.Context) (repo.OrderStats, error) {
	var out repo.OrderStats

	if err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Count(&out.TotalOrders).Error; err != nil {
		return repo.OrderStats{}, err
	}

	row := struct {
		Revenue decimal.Decimal
	}{}
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS revenue").
		Where("status <> ?", model.OrderStatusCancelled).
		Scan(&row).Error
	if err != nil {
		return repo.OrderStats{}, err
	}

	out.TotalRevenue = row.Revenue
	return out, nil
}
