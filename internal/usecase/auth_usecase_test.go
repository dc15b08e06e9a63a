package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"picklestore/internal/domain/model"
	"picklestore/internal/usecase"
)

type validatorStub struct {
	registerErr error
	loginErr    error
}

func (s validatorStub) ValidateRegister(ctx context.Context, username, email, password string) error {
	return s.registerErr
}

func (s validatorStub) ValidateLogin(ctx context.Context, email, password string) error {
	return s.loginErr
}

type issuerStub struct{}

func (issuerStub) Issue(userID int64, username string, role model.Role, now time.Time) (string, time.Time, error) {
	return "token-for-" + username, now.Add(time.Hour), nil
}

func hash(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(h)
}

func Test_Register_HashesPassword(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewAuthUsecase(users, validatorStub{}, issuerStub{})

	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		if u.PasswordHash == "hunter2secret" {
			return false // plaintext must never be stored
		}
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter2secret")) == nil &&
			u.Role == model.RoleUser
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = 1
	}).Return(nil)

	dto, err := uc.Register(context.Background(), usecase.AuthRegisterInput{
		Username: "gherkin",
		Email:    "gherkin@example.com",
		Password: "hunter2secret",
	})

	assert.NoError(t, err)
	assert.Equal(t, "gherkin", dto.Username)
	assert.Equal(t, "user", dto.Role)
}

func Test_Register_ValidationErrorPassesThrough(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewAuthUsecase(users, validatorStub{
		registerErr: usecase.NewHTTPError(http.StatusConflict, "Email already registered"),
	}, issuerStub{})

	_, err := uc.Register(context.Background(), usecase.AuthRegisterInput{})

	assertHTTPStatus(t, err, http.StatusConflict)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func Test_Register_UniqueViolationIsConflict(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewAuthUsecase(users, validatorStub{}, issuerStub{})

	users.On("Create", mock.Anything, mock.Anything).Return(errors.New("duplicate key value"))

	_, err := uc.Register(context.Background(), usecase.AuthRegisterInput{
		Username: "gherkin",
		Email:    "gherkin@example.com",
		Password: "hunter2secret",
	})
	assertHTTPStatus(t, err, http.StatusConflict)
}

func Test_Login_Success(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewAuthUsecase(users, validatorStub{}, issuerStub{})

	users.On("FindByEmail", mock.Anything, "gherkin@example.com").Return(&model.User{
		ID:           1,
		Username:     "gherkin",
		Email:        "gherkin@example.com",
		PasswordHash: hash(t, "hunter2secret"),
		Role:         model.RoleUser,
	}, nil)

	out, err := uc.Login(context.Background(), usecase.AuthLoginInput{
		Email:    "gherkin@example.com",
		Password: "hunter2secret",
	})

	assert.NoError(t, err)
	assert.Equal(t, "token-for-gherkin", out.Token)
	assert.Equal(t, "gherkin", out.User.Username)
}

func Test_Login_WrongPassword(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewAuthUsecase(users, validatorStub{}, issuerStub{})

	users.On("FindByEmail", mock.Anything, "gherkin@example.com").Return(&model.User{
		ID:           1,
		PasswordHash: hash(t, "hunter2secret"),
	}, nil)

	_, err := uc.Login(context.Background(), usecase.AuthLoginInput{
		Email:    "gherkin@example.com",
		Password: "wrong",
	})

	assertHTTPStatus(t, err, http.StatusUnauthorized)
	he, _ := usecase.AsHTTPError(err)
	assert.Equal(t, "Invalid credentials", he.Message)
}

// Unknown email and wrong password must be indistinguishable.
func Test_Login_UnknownEmailSameError(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewAuthUsecase(users, validatorStub{}, issuerStub{})

	users.On("FindByEmail", mock.Anything, "nobody@example.com").Return((*model.User)(nil), nil)

	_, err := uc.Login(context.Background(), usecase.AuthLoginInput{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	assertHTTPStatus(t, err, http.StatusUnauthorized)
	he, _ := usecase.AsHTTPError(err)
	assert.Equal(t, "Invalid credentials", he.Message)
}

func Test_Me_UnknownUser(t *testing.T) {
	users := new(UserRepoMock)
	uc := usecase.NewAuthUsecase(users, validatorStub{}, issuerStub{})

	users.On("FindByID", mock.Anything, int64(9)).Return((*model.User)(nil), nil)

	_, err := uc.Me(context.Background(), 9)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}
