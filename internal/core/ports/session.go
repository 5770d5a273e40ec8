package ports

import (
	"context"
	"time"

	"github.com/hotelhub/hotel-api/internal/core/domain"
)

// SessionStore persists sessions keyed by session id.
type SessionStore interface {
	Save(ctx context.Context, s *domain.Session, ttl time.Duration) error
	// Get returns domain.ErrSessionNotFound when the id is unknown or expired.
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// SessionService is the single read/write boundary for "who is logged in".
type SessionService interface {
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	// CurrentUser returns nil when there is no live session for id. It never errors.
	CurrentUser(ctx context.Context, id string) *domain.User
	// Resolve maps an access token to its live session, or nil.
	Resolve(ctx context.Context, accessToken string) *domain.Session
	Refresh(ctx context.Context, refreshToken string) (*domain.Session, error)
	Logout(ctx context.Context, id string) error
}
