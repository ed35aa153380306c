package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/TSB04/API-OCTICODE/internal/cache"
	apperrors "github.com/TSB04/API-OCTICODE/internal/errors"
	"github.com/TSB04/API-OCTICODE/internal/model"
	"github.com/TSB04/API-OCTICODE/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UpdateInput carries self-update fields. Nil pointers leave the field
// untouched. Role and admin flag are deliberately absent: self-service
// updates must not change privileges.
type UpdateInput struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// UserService exposes directory and self-service operations.
type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Search(ctx context.Context, filter repository.Filter) ([]model.User, error)
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id.String())
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

// Search applies an exact-match conjunction of the supplied fields.
// An empty filter returns every record; an empty result is a not-found.
func (s *userService) Search(ctx context.Context, filter repository.Filter) ([]model.User, error) {
	users, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperrors.ErrUserNotFound
	}
	return users, nil
}

// Get retrieves a user by id with caching.
func (s *userService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// Update replaces the supplied fields on the identified record.
func (s *userService) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	fields := map[string]interface{}{}
	if in.Email != nil {
		fields["email"] = *in.Email
		user.Email = *in.Email
	}
	if in.FirstName != nil {
		fields["first_name"] = *in.FirstName
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		fields["last_name"] = *in.LastName
		user.LastName = *in.LastName
	}
	if len(fields) == 0 {
		return user, nil
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return user, nil
}

// Delete removes the identified record.
func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}
