package ports

import (
	"context"

	"github.com/hotelhub/hotel-api/internal/core/domain"
	"github.com/hotelhub/hotel-api/internal/core/filter"
)

// SubmitBookingInput is a booking form submission.
type SubmitBookingInput struct {
	RoomID         string
	CheckIn        string
	CheckOut       string
	Guests         int
	Name           string
	Email          string
	Phone          string
	IdempotencyKey string
}

// BookingResult is returned after a submission.
type BookingResult struct {
	Booking *domain.Booking
	// AlreadyExisted is true when the Idempotency-Key matched an earlier submission.
	AlreadyExisted bool
}

// BookingListResult is a filtered booking view.
type BookingListResult struct {
	Items         []*domain.Booking
	Total         int
	ActiveFilters int
}

// BookingService defines booking use cases.
type BookingService interface {
	Submit(ctx context.Context, in SubmitBookingInput) (*BookingResult, error)
	Get(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, q BookingQuery, f filter.BookingFilters) (*BookingListResult, error)
	ChangeStatus(ctx context.Context, id string, status domain.BookingStatus, actor string) (*domain.Booking, error)
	Assign(ctx context.Context, id, employeeID string) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}

// RoomListResult is a filtered catalog view.
type RoomListResult struct {
	Items         []*domain.Room
	Total         int
	ActiveFilters int
}

// UpdateRoomInput carries the editable room fields; nil leaves a field unchanged.
type UpdateRoomInput struct {
	NightlyRate *float64
	Available   *bool
}

// RoomService defines catalog use cases.
type RoomService interface {
	Get(ctx context.Context, id string) (*domain.Room, error)
	List(ctx context.Context, f filter.RoomFilters) (*RoomListResult, error)
	Compare(ids []string) (*filter.Matrix, error)
	Update(ctx context.Context, id string, in UpdateRoomInput) (*domain.Room, error)
}

// PayInput is a payment form submission.
type PayInput struct {
	BookingID      string
	Method         string
	CardholderName string
}

// PaymentService simulates settling a booking.
type PaymentService interface {
	Pay(ctx context.Context, in PayInput) (*domain.Receipt, error)
}
