package middleware

import (
	"context"

	"github.com/hotelhub/hotel-api/internal/core/domain"
)

type stubResolver struct {
	sessions map[string]*domain.Session
	calls    int
}

func (r *stubResolver) Resolve(_ context.Context, token string) *domain.Session {
	r.calls++
	return r.sessions[token]
}

func resolverWith(token string, role domain.Role) *stubResolver {
	return &stubResolver{sessions: map[string]*domain.Session{
		token: {ID: "sess-1", User: domain.User{ID: "u1", Email: "x@example.com", Role: role}},
	}}
}
