package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/TSB04/API-OCTICODE/internal/errors"
	"github.com/TSB04/API-OCTICODE/internal/model"
)

// Filter is an exact-match conjunction over user fields. Zero-value fields
// are not applied, so an empty filter matches every record.
type Filter struct {
	Email     string
	FirstName string
	LastName  string
}

// UserRepository defines persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Search(ctx context.Context, filter Filter) ([]model.User, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewUserRepository builds a GORM-backed repository. Every call runs under
// the given deadline so a stalled store surfaces as ErrStoreTimeout instead
// of hanging the request.
func NewUserRepository(db *gorm.DB, timeout time.Duration) UserRepository {
	return &userRepository{db: db, timeout: timeout}
}

func (r *userRepository) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

// classify maps context expiry to the store timeout sentinel.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.ErrStoreTimeout
	}
	return err
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	ctx, cancel := r.withDeadline(ctx)
	defer cancel()
	return classify(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	ctx, cancel := r.withDeadline(ctx)
	defer cancel()
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, classify(err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, cancel := r.withDeadline(ctx)
	defer cancel()
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, classify(err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	ctx, cancel := r.withDeadline(ctx)
	defer cancel()
	var users []model.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, classify(err)
	}
	return users, nil
}

func (r *userRepository) Search(ctx context.Context, filter Filter) ([]model.User, error) {
	ctx, cancel := r.withDeadline(ctx)
	defer cancel()
	q := r.db.WithContext(ctx).Model(&model.User{})
	if filter.Email != "" {
		q = q.Where("email = ?", filter.Email)
	}
	if filter.FirstName != "" {
		q = q.Where("first_name = ?", filter.FirstName)
	}
	if filter.LastName != "" {
		q = q.Where("last_name = ?", filter.LastName)
	}
	var users []model.User
	if err := q.Find(&users).Error; err != nil {
		return nil, classify(err)
	}
	return users, nil
}

func (r *userRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	ctx, cancel := r.withDeadline(ctx)
	defer cancel()
	// RowsAffected is not checked here: MySQL reports 0 for no-op updates,
	// so existence is established by the caller before updating.
	return classify(r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields).Error)
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := r.withDeadline(ctx)
	defer cancel()
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{})
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
