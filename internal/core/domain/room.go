package domain

import "strings"

// Room is a catalog entry.
type Room struct {
	ID          string   `json:"id" bson:"_id"`
	Name        string   `json:"name" bson:"name"`
	Type        string   `json:"type" bson:"type"`
	Number      string   `json:"number" bson:"number"`
	NightlyRate float64  `json:"nightly_rate" bson:"nightly_rate"`
	Capacity    int      `json:"capacity" bson:"capacity"`
	Amenities   []string `json:"amenities" bson:"amenities"`
	Available   bool     `json:"available" bson:"available"`
	Images      []string `json:"images" bson:"images"`
}

// HasAmenity reports whether the room lists amenity, ignoring case.
func (r *Room) HasAmenity(amenity string) bool {
	for _, a := range r.Amenities {
		if strings.EqualFold(a, amenity) {
			return true
		}
	}
	return false
}

// Snapshot returns the subset of the room stored with a booking.
func (r *Room) Snapshot() BookedRoom {
	return BookedRoom{
		ID:          r.ID,
		Number:      r.Number,
		Type:        r.Type,
		NightlyRate: r.NightlyRate,
	}
}
