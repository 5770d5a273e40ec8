package ports

import (
	"context"

	"github.com/hotelhub/hotel-api/internal/core/domain"
)

// RegisterInput carries the profile of a new account.
type RegisterInput struct {
	Email       string
	Password    string
	Name        string
	Role        domain.Role
	Department  string
	Phone       string
	Position    string
	Specialties []string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Authenticate verifies credentials. Unknown email and wrong password both
	// return domain.ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	ListStaff(ctx context.Context, role domain.Role) ([]*domain.User, error)
}
