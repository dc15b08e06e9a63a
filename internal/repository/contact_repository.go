package repository

import (
	"context"

	"picklestore/internal/domain/model"
)

type ContactRepository interface {
	Create(ctx context.Context, contact model.Contact) (model.Contact, error)
	List(ctx context.Context) ([]model.Contact, error)
}
