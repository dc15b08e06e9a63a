package repository

import (
	"context"

	"picklestore/internal/domain/model"
)

// Catalog list filters.
type PickleListQuery struct {
	Category string
	Q        string
}

// PickleWithRating is a catalog row joined with its review aggregates.
type PickleWithRating struct {
	model.Pickle
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int64   `json:"review_count"`
}

type PickleRepository interface {
	List(ctx context.Context, q PickleListQuery) ([]PickleWithRating, error)
	FindByID(ctx context.Context, id int64) (model.Pickle, error)
	ListCategories(ctx context.Context) ([]string, error)

	Create(ctx context.Context, p model.Pickle) (model.Pickle, error)
	Update(ctx context.Context, p model.Pickle) error
	SoftDelete(ctx context.Context, id int64) error

	CountAll(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context, threshold int64) (int64, error)
}
