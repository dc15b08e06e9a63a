package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"picklestore/internal/domain/model"
	repo "picklestore/internal/repository"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// Set stock to an absolute value and keep the adjustment history.
func (r *InventoryGormRepository) SetStockWithAdjustment(ctx context.Context, adminUserID int64, pickleID int64, newStock int64, reason string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.Pickle
		if err := tx.First(&p, pickleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repo.ErrNotFound
			}
			return err
		}

		res := tx.Model(&model.Pickle{}).
			Where("id = ?", pickleID).
			Update("stock", newStock)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}

		adj := model.InventoryAdjustment{
			PickleID:    pickleID,
			AdminUserID: adminUserID,
			Delta:       newStock - p.Stock,
			Reason:      reason,
		}
		return tx.Create(&adj).Error
	})
}

// Decrement only when enough stock remains.
// stock >= qty in the WHERE clause is what serializes concurrent checkouts
// on the same row.
func (r *InventoryGormRepository) DecreaseStockIfEnough(ctx context.Context, pickleID int64, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Pickle{}).
		Where("id = ? AND stock >= ?", pickleID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}

// Stock restore (cancellation).
func (r *InventoryGormRepository) IncreaseStock(ctx context.Context, pickleID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Pickle{}).
		Where("id = ?", pickleID).
		Update("stock", gorm.Expr("stock + ?", qty))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *InventoryGormRepository) CreateAdjustment(ctx context.Context, adj model.InventoryAdjustment) error {
	return r.db.WithContext(ctx).Create(&adj).Error
}
