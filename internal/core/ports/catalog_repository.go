package ports

import (
	"context"

	"github.com/playverse/gamestore/internal/core/domain"
)

// GameFilter narrows a game listing. Zero values mean no filter.
type GameFilter struct {
	Category   domain.Category
	ActiveOnly bool
}

// GameRepository defines persistence for catalog entries.
type GameRepository interface {
	Create(ctx context.Context, g *domain.Game) error
	Update(ctx context.Context, g *domain.Game) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Game, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Game, error)
	List(ctx context.Context, filter GameFilter) ([]*domain.Game, error)
	Count(ctx context.Context) (int64, error)
}

// CartRepository stores one cart document per user.
type CartRepository interface {
	// GetOrCreate returns the user's cart, creating an empty one if needed.
	GetOrCreate(ctx context.Context, userID string) (*domain.Cart, error)
	// Save replaces the cart's items and bumps its update time.
	Save(ctx context.Context, cart *domain.Cart) error
}

// ReservationRepository defines persistence for reservations. Lookups by id
// are always scoped to the owning user.
type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Reservation, error)
	FindForUser(ctx context.Context, id, userID string) (*domain.Reservation, error)
	DeleteForUser(ctx context.Context, id, userID string) error
	Count(ctx context.Context) (int64, error)
}
