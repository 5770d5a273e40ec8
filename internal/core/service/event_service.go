package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hotelhub/hotel-api/internal/core/domain"
	"github.com/hotelhub/hotel-api/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, bookingID, status string, ts time.Time) (bool, error)
	Mark(ctx context.Context, bookingID, status string, ts time.Time) error
}

type eventService struct {
	eventRepo ports.EventRepository
	dedup     DedupChecker
	log       zerolog.Logger
}

// NewEventService returns an EventService implementation.
func NewEventService(eventRepo ports.EventRepository, dedup DedupChecker, log zerolog.Logger) ports.EventService {
	return &eventService{eventRepo: eventRepo, dedup: dedup, log: log}
}

// Process deduplicates and persists a single status change.
func (s *eventService) Process(ctx context.Context, in ports.BookingEventInput) error {
	to, ok := domain.ParseBookingStatus(in.To)
	if !ok {
		return fmt.Errorf("process event: %w (%q)", domain.ErrInvalidStatus, in.To)
	}

	isDup, err := s.dedup.IsDuplicate(ctx, in.BookingID, in.To, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("booking_id", in.BookingID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("booking_id", in.BookingID).Str("status", in.To).Msg("duplicate event skipped")
		return nil
	}

	event := &domain.BookingEvent{
		BookingID: in.BookingID,
		From:      domain.BookingStatus(in.From),
		To:        to,
		Actor:     in.Actor,
		Timestamp: in.Timestamp,
	}
	if err := s.eventRepo.InsertEvent(ctx, event); err != nil {
		return fmt.Errorf("process event: insert: %w", err)
	}

	// Marked after the write so a failed insert can be retried.
	if err := s.dedup.Mark(ctx, in.BookingID, in.To, in.Timestamp); err != nil {
		s.log.Warn().Err(err).Str("booking_id", in.BookingID).Msg("failed to set dedup key")
	}

	s.log.Info().
		Str("booking_id", in.BookingID).
		Str("from", in.From).
		Str("to", in.To).
		Str("actor", in.Actor).
		Msg("event processed")
	return nil
}
