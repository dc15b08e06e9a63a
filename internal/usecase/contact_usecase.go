package usecase

import (
	"context"
	"net/http"
	"strings"

	"picklestore/internal/domain/model"
	repo "picklestore/internal/repository"
)

type ContactUsecase struct {
	contactRepo repo.ContactRepository
}

func NewContactUsecase(contactRepo repo.ContactRepository) *ContactUsecase {
	return &ContactUsecase{contactRepo: contactRepo}
}

type SubmitContactInput struct {
	Name    string
	Email   string
	Message string
}

func (u *ContactUsecase) Submit(ctx context.Context, in SubmitContactInput) (model.Contact, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	message := strings.TrimSpace(in.Message)

	if name == "" || email == "" || message == "" {
		return model.Contact{}, NewHTTPError(http.StatusBadRequest, "All fields are required.")
	}

	created, err := u.contactRepo.Create(ctx, model.Contact{
		Name:    name,
		Email:   email,
		Message: message,
	})
	if err != nil {
		return model.Contact{}, NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return created, nil
}

func (u *ContactUsecase) List(ctx context.Context) ([]model.Contact, error) {
	contacts, err := u.contactRepo.List(ctx)
	if err != nil {
		return []model.Contact{}, NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return contacts, nil
}
