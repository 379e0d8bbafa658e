package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/playverse/gamestore/internal/core/domain"
	"github.com/playverse/gamestore/internal/core/ports"
)

// CredentialService implements registration, login checks and password
// changes. Passwords are only ever stored as bcrypt hashes.
type CredentialService struct {
	repo ports.UserRepository
	cost int
	log  zerolog.Logger
}

func NewCredentialService(repo ports.UserRepository, log zerolog.Logger) *CredentialService {
	return &CredentialService{repo: repo, cost: bcrypt.DefaultCost, log: log}
}

// Authenticate returns the user owning identifier (email, or username when
// identifier has no "@") if password matches. A wrong password or an unknown
// identifier yields nil, nil; only infrastructure failures return an error.
func (s *CredentialService) Authenticate(ctx context.Context, identifier, password string) (*domain.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, nil
	}

	var (
		user *domain.User
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = s.repo.FindByEmail(ctx, identifier)
	} else {
		user, err = s.repo.FindByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}
	return user, nil
}

// RegisterInput carries the registration form.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	Birthdate *time.Time
	Address   string
	Phone     string
}

// Register creates a client account. The email must not be registered yet.
func (s *CredentialService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	email := strings.TrimSpace(in.Email)
	username := strings.TrimSpace(in.Username)
	if email == "" || username == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := s.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleClient,
		Birthdate:    in.Birthdate,
		Address:      in.Address,
		Phone:        in.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

// SetPassword re-hashes newPassword and overwrites the stored credential.
func (s *CredentialService) SetPassword(ctx context.Context, user *domain.User, newPassword string) error {
	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	user.PasswordHash = hash
	return nil
}

// HashPassword returns the bcrypt hash of password.
func (s *CredentialService) HashPassword(password string) (string, error) {
	if password == "" {
		return "", domain.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *CredentialService) UserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}
