package ports

import (
	"context"

	"github.com/playverse/gamestore/internal/core/domain"
)

// UserRepository defines persistence for registered users.
type UserRepository interface {
	// Create inserts the user and returns it with its ID assigned. A clash on
	// the unique email or username index maps to ErrDuplicateEmail or
	// ErrDuplicateUsername.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	Count(ctx context.Context) (int64, error)
}
