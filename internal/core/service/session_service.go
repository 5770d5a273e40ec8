package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hotelhub/hotel-api/internal/core/domain"
	"github.com/hotelhub/hotel-api/internal/core/ports"
	"github.com/hotelhub/hotel-api/internal/pkg/token"
)

// Authenticator is the credential check a login delegates to.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

// SessionService owns every read and write of session state.
type SessionService struct {
	auth   Authenticator
	store  ports.SessionStore
	tokens *token.Issuer
	log    zerolog.Logger
	now    func() time.Time
}

func NewSessionService(auth Authenticator, store ports.SessionStore, tokens *token.Issuer, log zerolog.Logger) *SessionService {
	return &SessionService{auth: auth, store: store, tokens: tokens, log: log, now: time.Now}
}

// Login checks credentials and persists a new session holding both tokens
// and the user profile.
func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	user, err := s.auth.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	sess := &domain.Session{
		ID:        uuid.NewString(),
		User:      *user,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokens.RefreshTTL()),
	}
	sub := subjectOf(sess)

	if sess.AccessToken, err = s.tokens.Access(sub); err != nil {
		return nil, err
	}
	if sess.RefreshToken, err = s.tokens.Refresh(sub); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, sess, s.tokens.RefreshTTL()); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.log.Info().Str("session_id", sess.ID).Str("role", string(user.Role)).Msg("session opened")
	return sess, nil
}

// CurrentUser returns the user of session id, or nil when there is none.
func (s *SessionService) CurrentUser(ctx context.Context, id string) *domain.User {
	sess := s.load(ctx, id)
	if sess == nil {
		return nil
	}
	u := sess.User
	return &u
}

func (s *SessionService) Resolve(ctx context.Context, accessToken string) *domain.Session {
	if accessToken == "" {
		return nil
	}
	claims, err := s.tokens.Parse(accessToken, token.KindAccess)
	if err != nil {
		return nil
	}
	return s.load(ctx, claims.SessionID)
}

// Refresh issues a new access token for the session that owns refreshToken.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (*domain.Session, error) {
	claims, err := s.tokens.Parse(refreshToken, token.KindRefresh)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}

	sess := s.load(ctx, claims.SessionID)
	if sess == nil || sess.RefreshToken != refreshToken {
		return nil, domain.ErrSessionNotFound
	}

	if sess.AccessToken, err = s.tokens.Access(subjectOf(sess)); err != nil {
		return nil, err
	}

	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil, domain.ErrSessionNotFound
	}
	if err := s.store.Save(ctx, sess, ttl); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// Logout removes every key of session id. Logging out twice is not an error.
func (s *SessionService) Logout(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.log.Info().Str("session_id", id).Msg("session closed")
	return nil
}

// load treats absent, expired and unreadable sessions alike.
func (s *SessionService) load(ctx context.Context, id string) *domain.Session {
	if id == "" {
		return nil
	}
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			s.log.Warn().Err(err).Str("session_id", id).Msg("session lookup failed, treating as logged out")
		}
		return nil
	}
	if !sess.ExpiresAt.IsZero() && !s.now().Before(sess.ExpiresAt) {
		return nil
	}
	return sess
}

func subjectOf(sess *domain.Session) token.Subject {
	return token.Subject{
		SessionID: sess.ID,
		UserID:    sess.User.ID,
		Email:     sess.User.Email,
		Role:      string(sess.User.Role),
	}
}
