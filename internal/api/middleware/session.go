package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hotelhub/hotel-api/internal/core/domain"
)

// Context keys set by the session middleware.
const (
	KeyUser      = "user"
	KeySessionID = "session_id"
)

// SessionCookie carries the access token for browser page loads.
const SessionCookie = "hotel_session"

// SessionResolver maps an access token to its live session.
type SessionResolver interface {
	Resolve(ctx context.Context, accessToken string) *domain.Session
}

// LoadSession attaches the caller's session to the context when there is
// one. Requests without a session pass through untouched.
func LoadSession(sessions SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if raw := accessToken(c); raw != "" {
				if sess := sessions.Resolve(c.Request().Context(), raw); sess != nil {
					setSession(c, sess)
				}
			}
			return next(c)
		}
	}
}

// Auth rejects requests without a live session with 401.
func Auth(sessions SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentUser(c) != nil {
				return next(c)
			}
			raw := accessToken(c)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization")
			}
			sess := sessions.Resolve(c.Request().Context(), raw)
			if sess == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
			}
			setSession(c, sess)
			return next(c)
		}
	}
}

// CurrentUser returns the user attached by LoadSession or Auth, or nil.
func CurrentUser(c echo.Context) *domain.User {
	u, _ := c.Get(KeyUser).(*domain.User)
	return u
}

// SessionID returns the id of the attached session, or "".
func SessionID(c echo.Context) string {
	id, _ := c.Get(KeySessionID).(string)
	return id
}

func setSession(c echo.Context, sess *domain.Session) {
	u := sess.User
	c.Set(KeyUser, &u)
	c.Set(KeySessionID, sess.ID)
}

// accessToken prefers the Authorization header over the session cookie.
func accessToken(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if ck, err := c.Cookie(SessionCookie); err == nil {
		return ck.Value
	}
	return ""
}
