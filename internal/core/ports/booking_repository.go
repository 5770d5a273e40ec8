package ports

import (
	"context"

	"github.com/hotelhub/hotel-api/internal/core/domain"
)

// BookingQuery narrows a repository listing. Empty fields do not filter.
type BookingQuery struct {
	GuestEmail       string
	AssignedEmployee string
}

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	// Create returns domain.ErrDuplicateBooking when the id is taken.
	Create(ctx context.Context, b *domain.Booking) error
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Booking, error)
	// List returns bookings newest first.
	List(ctx context.Context, q BookingQuery) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
	Assign(ctx context.Context, id, employeeID string) error
	Delete(ctx context.Context, id string) error
}

// RoomRepository defines catalog persistence.
type RoomRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Room, error)
	List(ctx context.Context) ([]*domain.Room, error)
	Update(ctx context.Context, r *domain.Room) error
	// Upsert inserts or replaces rooms by id; used for fixture seeding.
	Upsert(ctx context.Context, rooms []*domain.Room) error
}
