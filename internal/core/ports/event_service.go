package ports

import (
	"context"
	"time"
)

// BookingEventInput is the DTO enqueued when a booking status changes.
type BookingEventInput struct {
	BookingID string
	From      string
	To        string
	Actor     string
	Timestamp time.Time
}

// EventService records booking status changes.
type EventService interface {
	Process(ctx context.Context, event BookingEventInput) error
}
