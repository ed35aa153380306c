package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/TSB04/API-OCTICODE/internal/auth"
	apperrors "github.com/TSB04/API-OCTICODE/internal/errors"
	"github.com/TSB04/API-OCTICODE/internal/model"
	"github.com/TSB04/API-OCTICODE/internal/password"
	"github.com/TSB04/API-OCTICODE/internal/repository"
)

// BcryptCost is the work factor applied to stored password hashes.
const BcryptCost = 12

// RegisterInput carries signup fields after transport validation.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

// AuthService handles registration and authentication.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, pw string) (token string, user *model.User, err error)
}

type authService struct {
	repo   repository.UserRepository
	jwt    *auth.JWTService
	guard  auth.LoginGuardInterface
	policy *password.Policy
}

// NewAuthService creates a new authentication service.
func NewAuthService(repo repository.UserRepository, jwt *auth.JWTService, guard auth.LoginGuardInterface, policy *password.Policy) AuthService {
	return &authService{
		repo:   repo,
		jwt:    jwt,
		guard:  guard,
		policy: policy,
	}
}

// Register creates a new user with a hashed password. The admin flag is
// always forced false here regardless of what the caller supplied.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if !s.policy.Validate(in.Password) {
		return nil, apperrors.ErrWeakPassword
	}

	existing, err := s.repo.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := in.Role
	if role == "" {
		role = model.DefaultRole
	}

	user := &model.User{
		Email:        in.Email,
		PasswordHash: string(hashed),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         role,
		IsAdmin:      false,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// Unique index still backstops the existence check above.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and issues a signed token.
func (s *authService) Login(ctx context.Context, email, pw string) (string, *model.User, error) {
	allowed, err := s.guard.Allow(ctx, email)
	if err == nil && !allowed {
		return "", nil, apperrors.ErrTooManyAttempts
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.ErrUserNotFound
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(pw)); err != nil {
		_ = s.guard.RecordFailure(ctx, email)
		return "", nil, apperrors.ErrInvalidCredentials
	}

	_ = s.guard.Reset(ctx, email)

	token, err := s.jwt.GenerateToken(user.ID, user.IsAdmin)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, user, nil
}
