package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hotelhub/hotel-api/internal/core/domain"
	"github.com/hotelhub/hotel-api/internal/core/filter"
	"github.com/hotelhub/hotel-api/internal/core/ports"
)

const (
	bookingIDPrefix = "BK"
	bookingIDDigits = 8
	maxIDAttempts   = 3
)

// EventPublisher hands booking status changes to the audit pipeline.
type EventPublisher interface {
	Enqueue(event ports.BookingEventInput)
}

// UserLookup resolves account ids.
type UserLookup interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

type BookingService struct {
	repo   ports.BookingRepository
	rooms  ports.RoomRepository
	users  UserLookup
	events EventPublisher
	logger zerolog.Logger
	newID  func() (string, error)
}

func NewBookingService(
	repo ports.BookingRepository,
	rooms ports.RoomRepository,
	users UserLookup,
	events EventPublisher,
	logger zerolog.Logger,
) *BookingService {
	return &BookingService{
		repo:   repo,
		rooms:  rooms,
		users:  users,
		events: events,
		logger: logger,
		newID:  generateBookingID,
	}
}

// requiredBookingFields is checked in order; the first empty field is reported.
var requiredBookingFields = []struct {
	name    string
	present func(ports.SubmitBookingInput) bool
}{
	{"roomId", func(in ports.SubmitBookingInput) bool { return strings.TrimSpace(in.RoomID) != "" }},
	{"checkIn", func(in ports.SubmitBookingInput) bool { return strings.TrimSpace(in.CheckIn) != "" }},
	{"checkOut", func(in ports.SubmitBookingInput) bool { return strings.TrimSpace(in.CheckOut) != "" }},
	{"guests", func(in ports.SubmitBookingInput) bool { return in.Guests != 0 }},
	{"name", func(in ports.SubmitBookingInput) bool { return strings.TrimSpace(in.Name) != "" }},
	{"email", func(in ports.SubmitBookingInput) bool { return strings.TrimSpace(in.Email) != "" }},
	{"phone", func(in ports.SubmitBookingInput) bool { return strings.TrimSpace(in.Phone) != "" }},
}

// ValidateSubmission returns a *domain.MissingFieldError naming the first
// absent required field, or nil.
func ValidateSubmission(in ports.SubmitBookingInput) error {
	for _, f := range requiredBookingFields {
		if !f.present(in) {
			return &domain.MissingFieldError{Field: f.name}
		}
	}
	return nil
}

// Submit stores a pending booking. If an idempotency key is provided and
// already seen, the earlier booking is returned without side effects.
func (s *BookingService) Submit(ctx context.Context, in ports.SubmitBookingInput) (*ports.BookingResult, error) {
	if err := ValidateSubmission(in); err != nil {
		return nil, err
	}

	if in.IdempotencyKey != "" {
		existing, err := s.repo.FindByIdempotencyKey(ctx, in.IdempotencyKey)
		if err == nil && existing != nil {
			s.logger.Info().Str("idempotency_key", in.IdempotencyKey).Str("booking_id", existing.ID).Msg("idempotent replay")
			return &ports.BookingResult{Booking: existing, AlreadyExisted: true}, nil
		}
	}

	room := domain.BookedRoom{ID: in.RoomID}
	if r, err := s.rooms.FindByID(ctx, in.RoomID); err == nil {
		room = r.Snapshot()
	} else if errors.Is(err, domain.ErrRoomNotFound) {
		s.logger.Warn().Str("room_id", in.RoomID).Msg("booking references unknown room")
	} else {
		return nil, fmt.Errorf("submit booking: room lookup: %w", err)
	}

	now := time.Now().UTC()
	b := &domain.Booking{
		Room: room,
		Guest: domain.Guest{
			Name:  strings.TrimSpace(in.Name),
			Email: strings.ToLower(strings.TrimSpace(in.Email)),
			Phone: strings.TrimSpace(in.Phone),
		},
		CheckIn:        in.CheckIn,
		CheckOut:       in.CheckOut,
		Guests:         in.Guests,
		Status:         domain.StatusPending,
		IdempotencyKey: in.IdempotencyKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	b.TotalCost = float64(b.Nights()) * room.NightlyRate

	if err := s.create(ctx, b); err != nil {
		if errors.Is(err, domain.ErrDuplicateIdempotencyKey) {
			return s.replay(ctx, in.IdempotencyKey)
		}
		s.logger.Error().Err(err).Msg("failed to create booking")
		return nil, err
	}

	s.logger.Info().Str("booking_id", b.ID).Str("room_id", room.ID).Msg("booking created")
	return &ports.BookingResult{Booking: b}, nil
}

// replay returns the booking a concurrent submission stored under key.
func (s *BookingService) replay(ctx context.Context, key string) (*ports.BookingResult, error) {
	existing, err := s.repo.FindByIdempotencyKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("submit booking: replay %q: %w", key, err)
	}
	s.logger.Info().Str("idempotency_key", key).Str("booking_id", existing.ID).Msg("idempotent replay after concurrent submit")
	return &ports.BookingResult{Booking: existing, AlreadyExisted: true}, nil
}

// create assigns a fresh id, retrying on the rare collision.
func (s *BookingService) create(ctx context.Context, b *domain.Booking) error {
	var err error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		if b.ID, err = s.newID(); err != nil {
			return fmt.Errorf("generate booking id: %w", err)
		}
		err = s.repo.Create(ctx, b)
		if !errors.Is(err, domain.ErrDuplicateBooking) {
			return err
		}
		s.logger.Warn().Str("booking_id", b.ID).Msg("booking id collision, retrying")
	}
	return err
}

func (s *BookingService) Get(ctx context.Context, id string) (*domain.Booking, error) {
	return s.repo.FindByID(ctx, id)
}

// List loads the bookings visible under q and applies f in memory.
func (s *BookingService) List(ctx context.Context, q ports.BookingQuery, f filter.BookingFilters) (*ports.BookingListResult, error) {
	all, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	items := filter.ApplyBookingFilters(all, f)
	return &ports.BookingListResult{
		Items:         items,
		Total:         len(items),
		ActiveFilters: filter.ActiveBookingFilterCount(f),
	}, nil
}

// ChangeStatus applies any status to any booking and records the change.
func (s *BookingService) ChangeStatus(ctx context.Context, id string, status domain.BookingStatus, actor string) (*domain.Booking, error) {
	status, ok := domain.ParseBookingStatus(string(status))
	if !ok {
		return nil, domain.ErrInvalidStatus
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := b.Status

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("change status: %w", err)
	}
	b.Status = status
	b.UpdatedAt = time.Now().UTC()

	s.events.Enqueue(ports.BookingEventInput{
		BookingID: id,
		From:      string(from),
		To:        string(status),
		Actor:     actor,
		Timestamp: b.UpdatedAt,
	})
	return b, nil
}

// Assign attaches an employee to a booking.
func (s *BookingService) Assign(ctx context.Context, id, employeeID string) (*domain.Booking, error) {
	emp, err := s.users.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !domain.IsEmployee(emp.Role) {
		return nil, domain.ErrInvalidRole
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Assign(ctx, id, emp.ID); err != nil {
		return nil, fmt.Errorf("assign booking: %w", err)
	}
	b.AssignedEmployee = emp.ID
	return b, nil
}

func (s *BookingService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// generateBookingID returns BK followed by random digits. The id is not
// guaranteed unique; the repository's unique key catches collisions.
func generateBookingID() (string, error) {
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(bookingIDDigits), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%0*d", bookingIDPrefix, bookingIDDigits, n.Int64()), nil
}
