package domain

import "time"

// BookingEvent records a status change applied to a booking.
type BookingEvent struct {
	BookingID string
	From      BookingStatus
	To        BookingStatus
	Actor     string
	Timestamp time.Time
}
