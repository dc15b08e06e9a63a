package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"picklestore/internal/domain/model"
	repo "picklestore/internal/repository"
)

type PickleGormRepository struct {
	db *gorm.DB
}

// DI
func NewPickleGormRepository(db *gorm.DB) *PickleGormRepository {
	return &PickleGormRepository{db: db}
}

// List returns catalog rows with review aggregates, filtered by category
// and name search.
func (r *PickleGormRepository) List(ctx context.Context, q repo.PickleListQuery) ([]repo.PickleWithRating, error) {
	var rows []repo.PickleWithRating

	tx := r.db.WithContext(ctx).
		Model(&model.Pickle{}).
		Select("pickles.*, COALESCE(AVG(reviews.rating), 0) AS avg_rating, COUNT(reviews.id) AS review_count").
		Joins("LEFT JOIN reviews ON reviews.pickle_id = pickles.id").
		Group("pickles.id")

	if strings.TrimSpace(q.Category) != "" {
		tx = tx.Where("pickles.category = ?", strings.TrimSpace(q.Category))
	}
	if strings.TrimSpace(q.Q) != "" {
		like := "%" + strings.TrimSpace(q.Q) + "%"
		tx = tx.Where("pickles.name ILIKE ?", like)
	}

	if err := tx.Order("pickles.created_at desc").Order("pickles.id desc").Find(&rows).Error; err != nil {
		return []repo.PickleWithRating{}, err
	}
	return rows, nil
}

func (r *PickleGormRepository) FindByID(ctx context.Context, id int64) (model.Pickle, error) {
	var p model.Pickle
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Pickle{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Pickle{}, err
	}
	return p, nil
}

func (r *PickleGormRepository) ListCategories(ctx context.Context) ([]string, error) {
	var cats []string
	err := r.db.WithContext(ctx).
		Model(&model.Pickle{}).
		Distinct("category").
		Where("category <> ''").
		Order("category asc").
		Pluck("category", &cats).Error
	if err != nil {
		return []string{}, err
	}
	return cats, nil
}

func (r *PickleGormRepository) Create(ctx context.Context, p model.Pickle) (model.Pickle, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Pickle{}, err
	}
	return p, nil
}

func (r *PickleGormRepository) Update(ctx context.Context, p model.Pickle) error {
	res := r.db.WithContext(ctx).Model(&model.Pickle{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"image_url":   p.ImageURL,
		"category":    p.Category,
		"stock":       p.Stock,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *PickleGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Pickle{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *PickleGormRepository) CountAll(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Pickle{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PickleGormRepository) CountLowStock(ctx context.Context, threshold int64) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&model.Pickle{}).
		Where("stock <= ?", threshold).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
