package validator

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"picklestore/internal/repository"
	"picklestore/internal/usecase"
)

type authValidator struct {
	users repository.UserRepository
}

// The usecase depends on the interface; this is the only implementation.
func NewAuthValidator(users repository.UserRepository) usecase.AuthValidator {
	return &authValidator{users: users}
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func (v *authValidator) ValidateRegister(ctx context.Context, username string, email string, password string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || email == "" || password == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "Username, email and password are required")
	}
	if len(username) < 3 || len(username) > 100 {
		return usecase.NewHTTPError(http.StatusBadRequest, "Username must be 3-100 characters")
	}
	if !emailRe.MatchString(email) {
		return usecase.NewHTTPError(http.StatusBadRequest, "Invalid email address")
	}
	if len(password) < 8 {
		return usecase.NewHTTPError(http.StatusBadRequest, "Password must be at least 8 characters")
	}

	// Duplicate checks need the DB. The unique indexes still back this
	// up under concurrent registrations.
	if u, err := v.users.FindByEmail(ctx, email); err == nil && u != nil {
		return usecase.NewHTTPError(http.StatusConflict, "Email already registered")
	}
	if u, err := v.users.FindByUsername(ctx, username); err == nil && u != nil {
		return usecase.NewHTTPError(http.StatusConflict, "Username already taken")
	}

	return nil
}

func (v *authValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "Email and password are required")
	}
	if !emailRe.MatchString(email) {
		return usecase.NewHTTPError(http.StatusBadRequest, "Invalid email address")
	}
	return nil
}
