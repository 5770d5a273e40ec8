package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hotelhub/hotel-api/internal/core/domain"
	"github.com/hotelhub/hotel-api/internal/core/ports"
)

const defaultPaymentMethod = "card"

// Locker guards a key against concurrent holders (Redis SET NX).
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// PaymentService simulates settling a booking: it waits a fixed delay and
// always succeeds. There is no gateway behind it.
type PaymentService struct {
	bookings ports.BookingRepository
	locks    Locker
	delay    time.Duration
	logger   zerolog.Logger
}

func NewPaymentService(bookings ports.BookingRepository, locks Locker, delay time.Duration, logger zerolog.Logger) *PaymentService {
	return &PaymentService{bookings: bookings, locks: locks, delay: delay, logger: logger}
}

// Pay rejects a second payment for the same booking while one is in flight.
func (s *PaymentService) Pay(ctx context.Context, in ports.PayInput) (*domain.Receipt, error) {
	b, err := s.bookings.FindByID(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}

	key := "payment:" + b.ID
	held, err := s.locks.Acquire(ctx, key, s.delay+30*time.Second)
	switch {
	case err != nil:
		s.logger.Warn().Err(err).Str("booking_id", b.ID).Msg("payment lock unavailable, processing anyway")
	case !held:
		return nil, domain.ErrPaymentInProgress
	default:
		defer func() {
			if err := s.locks.Release(context.WithoutCancel(ctx), key); err != nil {
				s.logger.Warn().Err(err).Str("booking_id", b.ID).Msg("failed to release payment lock")
			}
		}()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(s.delay):
	}

	method := strings.TrimSpace(in.Method)
	if method == "" {
		method = defaultPaymentMethod
	}

	receipt := &domain.Receipt{
		Number:    "RC-" + strings.ToUpper(uuid.NewString()[:8]),
		BookingID: b.ID,
		Amount:    b.TotalCost,
		Method:    method,
		PaidAt:    time.Now().UTC(),
	}
	s.logger.Info().Str("booking_id", b.ID).Str("receipt", receipt.Number).Float64("amount", receipt.Amount).Msg("payment simulated")
	return receipt, nil
}
