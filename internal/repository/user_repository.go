package repository

import (
	"context"

	"picklestore/internal/domain/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	// FindByEmail returns (nil, nil) when no user matches.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateRole(ctx context.Context, userID int64, role model.Role) error
	Delete(ctx context.Context, userID int64) error
	CountAll(ctx context.Context) (int64, error)
}
