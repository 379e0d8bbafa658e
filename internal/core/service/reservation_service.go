package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/playverse/gamestore/internal/core/domain"
	"github.com/playverse/gamestore/internal/core/ports"
)

// ReservationService books and cancels activities for clients.
type ReservationService struct {
	repo ports.ReservationRepository
	log  zerolog.Logger
}

func NewReservationService(repo ports.ReservationRepository, log zerolog.Logger) *ReservationService {
	return &ReservationService{repo: repo, log: log}
}

func (s *ReservationService) List(ctx context.Context, userID string) ([]*domain.Reservation, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Create books activity on date for userID with status "pendiente".
func (s *ReservationService) Create(ctx context.Context, userID, activity string, date time.Time) (*domain.Reservation, error) {
	activity = strings.TrimSpace(activity)
	fe := domain.FieldErrors{}
	if activity == "" {
		fe["activity"] = "activity is required"
	}
	if date.IsZero() {
		fe["date"] = "date is required"
	}
	if len(fe) > 0 {
		return nil, fe
	}

	r := &domain.Reservation{
		UserID:    userID,
		Activity:  activity,
		Date:      date,
		Status:    domain.ReservationPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", userID).Str("reservation_id", r.ID).Msg("reservation created")
	return r, nil
}

func (s *ReservationService) Get(ctx context.Context, id, userID string) (*domain.Reservation, error) {
	return s.repo.FindForUser(ctx, id, userID)
}

// Cancel deletes one of the user's reservations.
func (s *ReservationService) Cancel(ctx context.Context, id, userID string) error {
	if err := s.repo.DeleteForUser(ctx, id, userID); err != nil {
		return err
	}
	s.log.Info().Str("user_id", userID).Str("reservation_id", id).Msg("reservation cancelled")
	return nil
}
