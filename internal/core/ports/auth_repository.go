package ports

import (
	"context"

	"github.com/hotelhub/hotel-api/internal/core/domain"
)

// AuthRepository defines the interface for user account persistence.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// ListByRole returns users holding role; RoleUnknown lists every user.
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
}
