package repository

import (
	"context"

	"gorm.io/gorm"

	"picklestore/internal/domain/model"
	repo "picklestore/internal/repository"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) Create(ctx context.Context, review model.Review) (model.Review, error) {
	if err := r.db.WithContext(ctx).Create(&review).Error; err != nil {
		return model.Review{}, err
	}
	return review, nil
}

func (r *ReviewGormRepository) ExistsByUserAndPickle(ctx context.Context, userID int64, pickleID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("user_id = ? AND pickle_id = ?", userID, pickleID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ReviewGormRepository) ListByPickleID(ctx context.Context, pickleID int64) ([]repo.ReviewWithAuthor, error) {
	var rows []repo.ReviewWithAuthor

	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("reviews.*, users.username").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.pickle_id = ?", pickleID).
		Order("reviews.created_at desc").
		Find(&rows).Error
	if err != nil {
		return []repo.ReviewWithAuthor{}, err
	}
	return rows, nil
}
