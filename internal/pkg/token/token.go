// Package token issues and parses the HS256 access and refresh tokens that
// reference a server-side session.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "hotel-api"

// Kinds of token.
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carried by both token kinds.
type Claims struct {
	SessionID string `json:"sid"`
	UserID    string `json:"uid"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Kind      string `json:"kind"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies tokens with a shared secret.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewIssuer(secret string, accessTTL, refreshTTL time.Duration) *Issuer {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Issuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (i *Issuer) AccessTTL() time.Duration  { return i.accessTTL }
func (i *Issuer) RefreshTTL() time.Duration { return i.refreshTTL }

// Subject identifies who a token is issued for.
type Subject struct {
	SessionID string
	UserID    string
	Email     string
	Role      string
}

// Access signs a short-lived access token.
func (i *Issuer) Access(sub Subject) (string, error) {
	return i.sign(sub, KindAccess, i.accessTTL)
}

// Refresh signs a long-lived refresh token.
func (i *Issuer) Refresh(sub Subject) (string, error) {
	return i.sign(sub, KindRefresh, i.refreshTTL)
}

func (i *Issuer) sign(sub Subject, kind string, ttl time.Duration) (string, error) {
	now := i.now()
	claims := &Claims{
		SessionID: sub.SessionID,
		UserID:    sub.UserID,
		Email:     sub.Email,
		Role:      sub.Role,
		Kind:      kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub.UserID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return signed, nil
}

// Parse verifies raw and checks that it is of the expected kind.
func (i *Issuer) Parse(raw, kind string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(i.now))
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Kind != kind || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
