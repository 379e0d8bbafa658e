package service

import (
	"context"
	"fmt"

	"github.com/playverse/gamestore/internal/core/ports"
)

// DashboardSummary is what the administration page shows.
type DashboardSummary struct {
	Games        int64 `json:"games"`
	Users        int64 `json:"users"`
	Reservations int64 `json:"reservations"`
}

type DashboardService struct {
	games        ports.GameRepository
	users        ports.UserRepository
	reservations ports.ReservationRepository
}

func NewDashboardService(games ports.GameRepository, users ports.UserRepository, reservations ports.ReservationRepository) *DashboardService {
	return &DashboardService{games: games, users: users, reservations: reservations}
}

func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	var (
		sum DashboardSummary
		err error
	)
	if sum.Games, err = s.games.Count(ctx); err != nil {
		return nil, fmt.Errorf("count games: %w", err)
	}
	if sum.Users, err = s.users.Count(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if sum.Reservations, err = s.reservations.Count(ctx); err != nil {
		return nil, fmt.Errorf("count reservations: %w", err)
	}
	return &sum, nil
}
