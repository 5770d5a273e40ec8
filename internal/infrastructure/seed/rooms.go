// Package seed holds the catalog fixtures loaded at startup.
package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hotelhub/hotel-api/internal/core/domain"
	"github.com/hotelhub/hotel-api/internal/core/ports"
)

// Rooms returns a fresh copy of the catalog fixtures. Ids and names match
// filter.ComparisonTable.
func Rooms() []*domain.Room {
	return []*domain.Room{
		{
			ID: "r1", Name: "Habitación Estándar", Type: "standard", Number: "101",
			NightlyRate: 85, Capacity: 2, Available: true,
			Amenities: []string{"wifi", "tv", "room service"},
			Images:    []string{"/images/rooms/standard.jpg"},
		},
		{
			ID: "r2", Name: "Habitación Deluxe", Type: "deluxe", Number: "205",
			NightlyRate: 150, Capacity: 2, Available: true,
			Amenities: []string{"wifi", "tv", "minibar", "room service"},
			Images:    []string{"/images/rooms/deluxe.jpg"},
		},
		{
			ID: "r3", Name: "Suite Junior", Type: "suite", Number: "310",
			NightlyRate: 220, Capacity: 3, Available: true,
			Amenities: []string{"wifi", "tv", "minibar", "balcony", "room service"},
			Images:    []string{"/images/rooms/junior-suite.jpg"},
		},
		{
			ID: "r4", Name: "Suite Familiar", Type: "suite", Number: "402",
			NightlyRate: 280, Capacity: 5, Available: true,
			Amenities: []string{"wifi", "tv", "minibar", "balcony", "room service", "kitchenette"},
			Images:    []string{"/images/rooms/family-suite.jpg"},
		},
		{
			ID: "r5", Name: "Suite Presidencial", Type: "presidential", Number: "801",
			NightlyRate: 550, Capacity: 4, Available: false,
			Amenities: []string{"wifi", "tv", "minibar", "balcony", "jacuzzi", "room service"},
			Images:    []string{"/images/rooms/presidential.jpg", "/images/rooms/presidential-bath.jpg"},
		},
		{
			ID: "r6", Name: "Habitación Individual", Type: "single", Number: "112",
			NightlyRate: 60, Capacity: 1, Available: true,
			Amenities: []string{"wifi"},
			Images:    []string{"/images/rooms/single.jpg"},
		},
	}
}

// LoadRooms upserts the fixtures, so restarts restore the catalog without
// duplicating it.
func LoadRooms(ctx context.Context, repo ports.RoomRepository, log zerolog.Logger) error {
	rooms := Rooms()
	if err := repo.Upsert(ctx, rooms); err != nil {
		return fmt.Errorf("seed rooms: %w", err)
	}
	log.Info().Int("rooms", len(rooms)).Msg("room catalog seeded")
	return nil
}
