package service

import (
	"context"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/playverse/gamestore/internal/core/domain"
	"github.com/playverse/gamestore/internal/core/ports"
)

// GameInput carries the admin game form.
type GameInput struct {
	Name        string
	Slug        string
	Description string
	Price       float64
	Category    string
	Image       string
	Stock       int
	Active      bool
}

func (in GameInput) validate() error {
	fe := domain.FieldErrors{}
	if strings.TrimSpace(in.Name) == "" {
		fe["name"] = "name is required"
	}
	if in.Price <= 0 {
		fe["price"] = "price must be greater than 0"
	}
	if in.Stock < 0 {
		fe["stock"] = "stock cannot be negative"
	}
	if !domain.Category(in.Category).Valid() {
		fe["category"] = "unknown category"
	}
	if len(fe) > 0 {
		return fe
	}
	return nil
}

// GameService serves the public catalog and the admin game CRUD.
type GameService struct {
	repo ports.GameRepository
	log  zerolog.Logger
}

func NewGameService(repo ports.GameRepository, log zerolog.Logger) *GameService {
	return &GameService{repo: repo, log: log}
}

// Catalog lists active games, optionally restricted to one category.
func (s *GameService) Catalog(ctx context.Context, category domain.Category) ([]*domain.Game, error) {
	if category != "" && !category.Valid() {
		return nil, domain.ErrNotFound
	}
	return s.repo.List(ctx, ports.GameFilter{Category: category, ActiveOnly: true})
}

// Detail returns an active game by its slug.
func (s *GameService) Detail(ctx context.Context, slug string) (*domain.Game, error) {
	g, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !g.Active {
		return nil, domain.ErrGameNotFound
	}
	return g, nil
}

// List returns every game, active or not.
func (s *GameService) List(ctx context.Context) ([]*domain.Game, error) {
	return s.repo.List(ctx, ports.GameFilter{})
}

func (s *GameService) Get(ctx context.Context, id string) (*domain.Game, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *GameService) Create(ctx context.Context, in GameInput) (*domain.Game, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	g := applyGameInput(&domain.Game{}, in)
	if err := s.repo.Create(ctx, g); err != nil {
		s.log.Error().Err(err).Str("name", g.Name).Msg("failed to create game")
		return nil, err
	}
	s.log.Info().Str("game_id", g.ID).Str("slug", g.Slug).Msg("game created")
	return g, nil
}

func (s *GameService) Update(ctx context.Context, id string, in GameInput) (*domain.Game, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	applyGameInput(g, in)
	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	s.log.Info().Str("game_id", g.ID).Msg("game updated")
	return g, nil
}

func (s *GameService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("game_id", id).Msg("game deleted")
	return nil
}

func applyGameInput(g *domain.Game, in GameInput) *domain.Game {
	g.Name = strings.TrimSpace(in.Name)
	g.Slug = in.Slug
	if g.Slug == "" {
		g.Slug = slugify(g.Name)
	}
	g.Description = in.Description
	g.Price = in.Price
	g.Category = domain.Category(in.Category)
	g.Image = in.Image
	g.Stock = in.Stock
	g.Active = in.Active
	return g
}

// slugify keeps letters and digits and joins words with underscores.
func slugify(name string) string {
	var b strings.Builder
	sep := false
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if sep && b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			sep = false
		default:
			sep = true
		}
	}
	return b.String()
}
