package validator

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"picklestore/internal/domain/model"
	"picklestore/internal/usecase"
)

type userRepoMock struct{ mock.Mock }

func (m *userRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *userRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *userRepoMock) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *userRepoMock) FindByID(ctx context.Context, id int64) (*model.User, error) {
	panic("not used in validator tests")
}

func (m *userRepoMock) List(ctx context.Context) ([]model.User, error) {
	panic("not used in validator tests")
}

func (m *userRepoMock) UpdateRole(ctx context.Context, userID int64, role model.Role) error {
	panic("not used in validator tests")
}

func (m *userRepoMock) Delete(ctx context.Context, userID int64) error {
	panic("not used in validator tests")
}

func (m *userRepoMock) CountAll(ctx context.Context) (int64, error) {
	panic("not used in validator tests")
}

func newValidator() (*userRepoMock, usecase.AuthValidator) {
	users := new(userRepoMock)
	return users, NewAuthValidator(users)
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok, "expected HTTPError, got %v", err)
	if ok {
		assert.Equal(t, status, he.Status)
	}
}

func Test_ValidateRegister_OK(t *testing.T) {
	users, v := newValidator()
	users.On("FindByEmail", mock.Anything, "new@example.com").Return((*model.User)(nil), nil)
	users.On("FindByUsername", mock.Anything, "newbie").Return((*model.User)(nil), nil)

	err := v.ValidateRegister(context.Background(), "newbie", "new@example.com", "longenough")
	assert.NoError(t, err)
}

func Test_ValidateRegister_MissingFields(t *testing.T) {
	_, v := newValidator()

	err := v.ValidateRegister(context.Background(), "", "new@example.com", "longenough")
	assertStatus(t, err, http.StatusBadRequest)
}

func Test_ValidateRegister_BadEmail(t *testing.T) {
	_, v := newValidator()

	for _, email := range []string{"not-an-email", "a@b", "a @b.com"} {
		err := v.ValidateRegister(context.Background(), "newbie", email, "longenough")
		assertStatus(t, err, http.StatusBadRequest)
	}
}

func Test_ValidateRegister_ShortPassword(t *testing.T) {
	_, v := newValidator()

	err := v.ValidateRegister(context.Background(), "newbie", "new@example.com", "short")
	assertStatus(t, err, http.StatusBadRequest)
}

func Test_ValidateRegister_DuplicateEmail(t *testing.T) {
	users, v := newValidator()
	users.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{ID: 1}, nil)

	err := v.ValidateRegister(context.Background(), "newbie", "taken@example.com", "longenough")
	assertStatus(t, err, http.StatusConflict)
}

func Test_ValidateRegister_DuplicateUsername(t *testing.T) {
	users, v := newValidator()
	users.On("FindByEmail", mock.Anything, "new@example.com").Return((*model.User)(nil), nil)
	users.On("FindByUsername", mock.Anything, "taken").Return(&model.User{ID: 2}, nil)

	err := v.ValidateRegister(context.Background(), "taken", "new@example.com", "longenough")
	assertStatus(t, err, http.StatusConflict)
}

func Test_ValidateLogin_MissingFields(t *testing.T) {
	_, v := newValidator()

	assertStatus(t, v.ValidateLogin(context.Background(), "", "pw"), http.StatusBadRequest)
	assertStatus(t, v.ValidateLogin(context.Background(), "a@b.com", ""), http.StatusBadRequest)
}
