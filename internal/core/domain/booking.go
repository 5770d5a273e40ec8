package domain

import (
	"strings"
	"time"
)

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// StatusAll is the filter value meaning "any status".
const StatusAll = "all"

// BookingStatuses lists every valid status.
var BookingStatuses = []BookingStatus{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

// ParseBookingStatus returns the status named by s, or false if s names none.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	st := BookingStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range BookingStatuses {
		if st == known {
			return st, true
		}
	}
	return "", false
}

// DateLayout is the wire and storage format of stay dates.
const DateLayout = "2006-01-02"

// BookedRoom is the room snapshot stored with a booking.
type BookedRoom struct {
	ID          string  `json:"id" bson:"id"`
	Number      string  `json:"number" bson:"number"`
	Type        string  `json:"type" bson:"type"`
	NightlyRate float64 `json:"nightly_rate" bson:"nightly_rate"`
}

// Guest holds the client contact details of a booking.
type Guest struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Phone string `json:"phone" bson:"phone"`
}

// Booking is the reservation aggregate. Status changes are unconstrained.
type Booking struct {
	ID               string        `json:"id" bson:"_id"`
	Room             BookedRoom    `json:"room" bson:"room"`
	Guest            Guest         `json:"guest" bson:"guest"`
	CheckIn          string        `json:"check_in" bson:"check_in"`
	CheckOut         string        `json:"check_out" bson:"check_out"`
	Guests           int           `json:"guests" bson:"guests"`
	Status           BookingStatus `json:"status" bson:"status"`
	TotalCost        float64       `json:"total_cost" bson:"total_cost"`
	AssignedEmployee string        `json:"assigned_employee,omitempty" bson:"assigned_employee,omitempty"`
	IdempotencyKey   string        `json:"-" bson:"idempotency_key,omitempty"`
	CreatedAt        time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at" bson:"updated_at"`
}

// Nights returns the number of nights between check-in and check-out, or 0
// when either date is malformed or the interval is empty.
func (b *Booking) Nights() int {
	in, err := time.Parse(DateLayout, b.CheckIn)
	if err != nil {
		return 0
	}
	out, err := time.Parse(DateLayout, b.CheckOut)
	if err != nil {
		return 0
	}
	n := int(out.Sub(in).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}

// Receipt is the result of a simulated payment.
type Receipt struct {
	Number    string    `json:"receipt_number"`
	BookingID string    `json:"booking_id"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method"`
	PaidAt    time.Time `json:"paid_at"`
}
