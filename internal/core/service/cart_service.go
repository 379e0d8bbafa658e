package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/playverse/gamestore/internal/core/domain"
	"github.com/playverse/gamestore/internal/core/ports"
)

// CartService manages a client's shopping cart.
type CartService struct {
	carts ports.CartRepository
	games ports.GameRepository
	log   zerolog.Logger
}

func NewCartService(carts ports.CartRepository, games ports.GameRepository, log zerolog.Logger) *CartService {
	return &CartService{carts: carts, games: games, log: log}
}

func (s *CartService) View(ctx context.Context, userID string) (*domain.Cart, error) {
	return s.carts.GetOrCreate(ctx, userID)
}

// Add puts one unit of the game in the cart, or increments an existing line.
func (s *CartService) Add(ctx context.Context, userID, gameID string) (*domain.CartItem, error) {
	game, err := s.games.FindByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := cart.ItemForGame(game.ID)
	if item == nil {
		cart.Items = append(cart.Items, domain.CartItem{
			ID:       uuid.NewString(),
			GameID:   game.ID,
			Name:     game.Name,
			Quantity: 1,
			Price:    game.Price,
		})
		item = &cart.Items[len(cart.Items)-1]
	} else {
		item.Quantity++
		item.Price = game.Price * float64(item.Quantity)
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", userID).Str("game_id", game.ID).Int("quantity", item.Quantity).Msg("cart item added")
	return item, nil
}

// UpdateQuantity sets the quantity of one of the user's cart lines.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*domain.CartItem, error) {
	if quantity < 1 {
		return nil, domain.FieldErrors{"quantity": "quantity must be at least 1"}
	}
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	item := cart.Item(itemID)
	if item == nil {
		return nil, domain.ErrCartItemNotFound
	}

	game, err := s.games.FindByID(ctx, item.GameID)
	if err != nil {
		return nil, fmt.Errorf("update cart item: %w", err)
	}
	item.Quantity = quantity
	item.Price = game.Price * float64(quantity)

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return item, nil
}

// Remove deletes one of the user's cart lines.
func (s *CartService) Remove(ctx context.Context, userID, itemID string) error {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	idx := -1
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrCartItemNotFound
	}
	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	return s.save(ctx, cart)
}

func (s *CartService) save(ctx context.Context, cart *domain.Cart) error {
	cart.UpdatedAt = time.Now().UTC()
	if err := s.carts.Save(ctx, cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
