package repository

import (
	"context"

	"picklestore/internal/domain/model"
)

// ReviewWithAuthor joins the reviewer's username for display.
type ReviewWithAuthor struct {
	model.Review
	Username string `json:"username"`
}

type ReviewRepository interface {
	Create(ctx context.Context, review model.Review) (model.Review, error)
	ExistsByUserAndPickle(ctx context.Context, userID int64, pickleID int64) (bool, error)
	ListByPickleID(ctx context.Context, pickleID int64) ([]ReviewWithAuthor, error)
}
