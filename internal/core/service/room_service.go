package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hotelhub/hotel-api/internal/core/domain"
	"github.com/hotelhub/hotel-api/internal/core/filter"
	"github.com/hotelhub/hotel-api/internal/core/ports"
)

type RoomService struct {
	repo   ports.RoomRepository
	table  map[string]filter.RoomFeatures
	logger zerolog.Logger
}

func NewRoomService(repo ports.RoomRepository, logger zerolog.Logger) *RoomService {
	return &RoomService{repo: repo, table: filter.ComparisonTable, logger: logger}
}

func (s *RoomService) Get(ctx context.Context, id string) (*domain.Room, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *RoomService) List(ctx context.Context, f filter.RoomFilters) (*ports.RoomListResult, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	items := filter.ApplyRoomFilters(all, f)
	return &ports.RoomListResult{
		Items:         items,
		Total:         len(items),
		ActiveFilters: filter.ActiveRoomFilterCount(f),
	}, nil
}

// Compare builds the side-by-side matrix. More than filter.MaxCompared
// distinct ids is rejected with domain.ErrComparisonFull.
func (s *RoomService) Compare(ids []string) (*filter.Matrix, error) {
	sel, err := filter.NewSelection(ids...)
	if err != nil {
		return nil, err
	}
	m := filter.Compare(sel, s.table)
	return &m, nil
}

func (s *RoomService) Update(ctx context.Context, id string, in ports.UpdateRoomInput) (*domain.Room, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.NightlyRate != nil {
		room.NightlyRate = *in.NightlyRate
	}
	if in.Available != nil {
		room.Available = *in.Available
	}
	if err := s.repo.Update(ctx, room); err != nil {
		return nil, fmt.Errorf("update room: %w", err)
	}
	s.logger.Info().Str("room_id", id).Float64("nightly_rate", room.NightlyRate).Bool("available", room.Available).Msg("room updated")
	return room, nil
}
