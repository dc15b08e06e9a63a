package repository

import (
	"context"

	"gorm.io/gorm"

	"picklestore/internal/domain/model"
)

type ContactGormRepository struct {
	db *gorm.DB
}

func NewContactGormRepository(db *gorm.DB) *ContactGormRepository {
	return &ContactGormRepository{db: db}
}

func (r *ContactGormRepository) Create(ctx context.Context, contact model.Contact) (model.Contact, error) {
	if err := r.db.WithContext(ctx).Create(&contact).Error; err != nil {
		return model.Contact{}, err
	}
	return contact, nil
}

func (r *ContactGormRepository) List(ctx context.Context) ([]model.Contact, error) {
	var contacts []model.Contact
	if err := r.db.WithContext(ctx).
		Order("created_at desc").
		Find(&contacts).Error; err != nil {
		return []model.Contact{}, err
	}
	return contacts, nil
}
