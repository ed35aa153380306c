package auth

import (
	"context"
	"time"

	"github.com/TSB04/API-OCTICODE/internal/cache"
)

const (
	attemptKeyPrefix = "login_attempts:"
	// AttemptLimit is the number of failed logins tolerated per email per window.
	AttemptLimit = 10
	// AttemptWindow is how long a failed-attempt counter lives.
	AttemptWindow = 15 * time.Minute
)

// LoginGuardInterface defines the throttling contract consumed by the auth service.
type LoginGuardInterface interface {
	Allow(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// LoginGuard tracks failed login attempts per email in Redis.
// The cache wrapper swallows redis outages, so throttling fails open.
type LoginGuard struct {
	cache *cache.Client
}

// Ensure LoginGuard implements LoginGuardInterface
var _ LoginGuardInterface = (*LoginGuard)(nil)

// NewLoginGuard creates a new login guard.
func NewLoginGuard(cache *cache.Client) *LoginGuard {
	return &LoginGuard{cache: cache}
}

// Allow reports whether a login attempt for email may proceed.
func (g *LoginGuard) Allow(ctx context.Context, email string) (bool, error) {
	data, err := g.cache.Get(ctx, attemptKeyPrefix+email)
	if err != nil || data == nil {
		return true, nil
	}
	count := 0
	for _, b := range data {
		if b < '0' || b > '9' {
			return true, nil
		}
		count = count*10 + int(b-'0')
	}
	return count < AttemptLimit, nil
}

// RecordFailure increments the failed-attempt counter for email.
func (g *LoginGuard) RecordFailure(ctx context.Context, email string) error {
	_, err := g.cache.Incr(ctx, attemptKeyPrefix+email, AttemptWindow)
	return err
}

// Reset clears the failed-attempt counter after a successful login.
func (g *LoginGuard) Reset(ctx context.Context, email string) error {
	return g.cache.Delete(ctx, attemptKeyPrefix+email)
}
