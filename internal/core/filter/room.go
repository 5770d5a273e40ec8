package filter

import (
	"strings"

	"github.com/hotelhub/hotel-api/internal/core/domain"
)

// RoomFilters is the catalog page filter state.
type RoomFilters struct {
	Search        string
	RoomType      string
	MinPrice      *float64
	MaxPrice      *float64
	Guests        int
	Amenities     []string
	AvailableOnly bool
}

// Predicates translates the filter state into room predicates.
func (f RoomFilters) Predicates() []Predicate[*domain.Room] {
	var preds []Predicate[*domain.Room]

	if term := strings.TrimSpace(f.Search); term != "" {
		preds = append(preds, func(r *domain.Room) bool {
			return containsFold(term, r.Name, r.Type, r.Number)
		})
	}
	if !isAll(f.RoomType) {
		roomType := strings.TrimSpace(f.RoomType)
		preds = append(preds, func(r *domain.Room) bool { return strings.EqualFold(r.Type, roomType) })
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		lo, hi := f.MinPrice, f.MaxPrice
		preds = append(preds, func(r *domain.Room) bool { return inRange(r.NightlyRate, lo, hi) })
	}
	if f.Guests > 0 {
		preds = append(preds, func(r *domain.Room) bool { return r.Capacity >= f.Guests })
	}
	if len(f.Amenities) > 0 {
		preds = append(preds, func(r *domain.Room) bool {
			for _, a := range f.Amenities {
				if !r.HasAmenity(a) {
					return false
				}
			}
			return true
		})
	}
	if f.AvailableOnly {
		preds = append(preds, func(r *domain.Room) bool { return r.Available })
	}
	return preds
}

// ApplyRoomFilters returns the rooms matching f, in input order.
func ApplyRoomFilters(rooms []*domain.Room, f RoomFilters) []*domain.Room {
	return Apply(rooms, f.Predicates()...)
}

// ActiveRoomFilterCount counts the fields of f that differ from their default.
func ActiveRoomFilterCount(f RoomFilters) int {
	return countIf(
		strings.TrimSpace(f.Search) != "",
		!isAll(f.RoomType),
		f.MinPrice != nil,
		f.MaxPrice != nil,
		f.Guests > 0,
		len(f.Amenities) > 0,
		f.AvailableOnly,
	)
}
