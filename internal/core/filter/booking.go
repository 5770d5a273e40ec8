package filter

import (
	"strings"

	"github.com/hotelhub/hotel-api/internal/core/domain"
)

// BookingFilters is the admin table filter state.
// Dates are YYYY-MM-DD strings and compare lexically.
type BookingFilters struct {
	Search    string
	Status    string // "all" or a domain.BookingStatus
	RoomType  string // "all" or a room type
	CheckIn   string // exact check-in date
	CheckOut  string // exact check-out date
	DateFrom  string // check-in on or after
	DateTo    string // check-out on or before
	MinAmount *float64
	MaxAmount *float64
}

// DefaultBookingFilters is the state a page starts with.
func DefaultBookingFilters() BookingFilters {
	return BookingFilters{Status: domain.StatusAll, RoomType: domain.StatusAll}
}

// Predicates translates the filter state into booking predicates. Fields at
// their default contribute nothing.
func (f BookingFilters) Predicates() []Predicate[*domain.Booking] {
	var preds []Predicate[*domain.Booking]

	if term := strings.TrimSpace(f.Search); term != "" {
		preds = append(preds, func(b *domain.Booking) bool {
			return containsFold(term, b.ID, b.Room.Type, b.Room.Number, b.Guest.Name, b.Guest.Email)
		})
	}
	if !isAll(f.Status) {
		status := domain.BookingStatus(strings.TrimSpace(f.Status))
		preds = append(preds, func(b *domain.Booking) bool { return b.Status == status })
	}
	if !isAll(f.RoomType) {
		roomType := strings.TrimSpace(f.RoomType)
		preds = append(preds, func(b *domain.Booking) bool { return strings.EqualFold(b.Room.Type, roomType) })
	}
	if f.CheckIn != "" {
		preds = append(preds, func(b *domain.Booking) bool { return b.CheckIn == f.CheckIn })
	}
	if f.CheckOut != "" {
		preds = append(preds, func(b *domain.Booking) bool { return b.CheckOut == f.CheckOut })
	}
	if f.DateFrom != "" {
		preds = append(preds, func(b *domain.Booking) bool { return b.CheckIn >= f.DateFrom })
	}
	if f.DateTo != "" {
		preds = append(preds, func(b *domain.Booking) bool { return b.CheckOut <= f.DateTo })
	}
	if f.MinAmount != nil || f.MaxAmount != nil {
		lo, hi := f.MinAmount, f.MaxAmount
		preds = append(preds, func(b *domain.Booking) bool { return inRange(b.TotalCost, lo, hi) })
	}
	return preds
}

// ApplyBookingFilters returns the bookings matching f, in input order.
func ApplyBookingFilters(records []*domain.Booking, f BookingFilters) []*domain.Booking {
	return Apply(records, f.Predicates()...)
}

// ActiveBookingFilterCount counts the fields of f that differ from their default.
// A field counts exactly when it constrains Predicates.
func ActiveBookingFilterCount(f BookingFilters) int {
	return countIf(
		strings.TrimSpace(f.Search) != "",
		!isAll(f.Status),
		!isAll(f.RoomType),
		f.CheckIn != "",
		f.CheckOut != "",
		f.DateFrom != "",
		f.DateTo != "",
		f.MinAmount != nil,
		f.MaxAmount != nil,
	)
}
