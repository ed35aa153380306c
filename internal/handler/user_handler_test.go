package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/TSB04/API-OCTICODE/internal/auth"
	apperrors "github.com/TSB04/API-OCTICODE/internal/errors"
	"github.com/TSB04/API-OCTICODE/internal/model"
	"github.com/TSB04/API-OCTICODE/internal/repository"
	"github.com/TSB04/API-OCTICODE/internal/service"
)

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserService) Search(ctx context.Context, filter repository.Filter) ([]model.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id uuid.UUID, in service.UpdateInput) (*model.User, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*model.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, pw string) (string, *model.User, error) {
	args := m.Called(ctx, email, pw)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

type testValidator struct {
	v *validator.Validate
}

func (t *testValidator) Validate(i interface{}) error {
	return t.v.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{v: validator.New()}
	return e
}

func TestListUsersProjectionExcludesPassword(t *testing.T) {
	svc := new(MockUserService)
	h := NewUserHandler(svc, zerolog.Nop())

	svc.On("List", mock.Anything).Return([]model.User{
		{
			ID:           uuid.New(),
			Email:        "user@example.com",
			PasswordHash: "$2a$12$secret",
			FirstName:    "Ada",
			LastName:     "Lovelace",
			Role:         "employee",
		},
	}, nil)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/user/all", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.ListUsers(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "$2a$12$secret")

	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "user@example.com", entries[0]["email"])
	assert.Equal(t, "Ada", entries[0]["fname"])
	assert.Equal(t, "Lovelace", entries[0]["lname"])
	assert.Equal(t, "employee", entries[0]["role"])
	assert.Equal(t, false, entries[0]["isAdmin"])
}

func TestFindUsersProjectsToNameAndEmail(t *testing.T) {
	svc := new(MockUserService)
	h := NewUserHandler(svc, zerolog.Nop())

	svc.On("Search", mock.Anything, repository.Filter{FirstName: "Ada"}).Return([]model.User{
		{ID: uuid.New(), Email: "user@example.com", FirstName: "Ada", LastName: "Lovelace", IsAdmin: true},
	}, nil)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/user/find", strings.NewReader(`{"fname":"Ada"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.FindUsers(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, map[string]interface{}{
		"fname": "Ada",
		"lname": "Lovelace",
		"email": "user@example.com",
	}, entries[0])
}

func TestSignupValidationIsFieldKeyed(t *testing.T) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc, zerolog.Nop())

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/user/signup", strings.NewReader(`{"password":"Abcde1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Signup(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp apperrors.ValidationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Code)
	assert.Contains(t, resp.Fields, "email")
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestSignupIgnoresCallerSuppliedAdminFlag(t *testing.T) {
	svc := new(MockAuthService)
	h := NewAuthHandler(svc, zerolog.Nop())

	var captured service.RegisterInput
	svc.On("Register", mock.Anything, mock.AnythingOfType("service.RegisterInput")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(service.RegisterInput)
		}).
		Return(&model.User{ID: uuid.New(), Email: "user@example.com"}, nil)

	e := newTestEcho()
	body := `{"email":"user@example.com","password":"Abcde1","isAdmin":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/user/signup", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Signup(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "user@example.com", captured.Email)
	// RegisterInput has no admin field at all; the flag cannot travel past the DTO.
}

func TestGetMeMissingRecordIs404(t *testing.T) {
	svc := new(MockUserService)
	h := NewUserHandler(svc, zerolog.Nop())

	id := uuid.New()
	svc.On("Get", mock.Anything, id).Return(nil, apperrors.ErrUserNotFound)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{UserID: id.String()}))

	require.NoError(t, h.GetMe(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteMeWithoutTokenIsUnauthorized(t *testing.T) {
	svc := new(MockUserService)
	h := NewUserHandler(svc, zerolog.Nop())

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodDelete, "/api/user/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.DeleteMe(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	svc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
