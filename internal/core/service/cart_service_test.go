package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/playverse/gamestore/internal/core/domain"
)

func newCartFixture() (*CartService, *stubCartRepo) {
	games := newStubGameRepo(
		&domain.Game{ID: "g1", Name: "Halo 3", Price: 20, Active: true},
		&domain.Game{ID: "g2", Name: "Alien", Price: 15, Active: true},
	)
	carts := newStubCartRepo()
	return NewCartService(carts, games, zerolog.Nop()), carts
}

func TestCartService_AddIncrements(t *testing.T) {
	svc, _ := newCartFixture()
	ctx := context.Background()

	item, err := svc.Add(ctx, "u1", "g1")
	if err != nil || item.Quantity != 1 || item.Price != 20 {
		t.Fatalf("unexpected first add %+v (%v)", item, err)
	}
	item, err = svc.Add(ctx, "u1", "g1")
	if err != nil || item.Quantity != 2 || item.Price != 40 {
		t.Fatalf("unexpected second add %+v (%v)", item, err)
	}
	_, _ = svc.Add(ctx, "u1", "g2")

	cart, _ := svc.View(ctx, "u1")
	if len(cart.Items) != 2 || cart.Total() != 55 {
		t.Fatalf("unexpected cart %+v total %v", cart.Items, cart.Total())
	}
}

func TestCartService_AddUnknownGame(t *testing.T) {
	svc, _ := newCartFixture()
	if _, err := svc.Add(context.Background(), "u1", "nope"); !errors.Is(err, domain.ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}

func TestCartService_UpdateQuantity(t *testing.T) {
	svc, _ := newCartFixture()
	ctx := context.Background()
	item, _ := svc.Add(ctx, "u1", "g2")

	updated, err := svc.UpdateQuantity(ctx, "u1", item.ID, 3)
	if err != nil || updated.Quantity != 3 || updated.Price != 45 {
		t.Fatalf("unexpected update %+v (%v)", updated, err)
	}

	var fe domain.FieldErrors
	if _, err := svc.UpdateQuantity(ctx, "u1", item.ID, 0); !errors.As(err, &fe) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCartService_ItemsAreScopedToOwner(t *testing.T) {
	svc, _ := newCartFixture()
	ctx := context.Background()
	item, _ := svc.Add(ctx, "u1", "g1")

	if _, err := svc.UpdateQuantity(ctx, "u2", item.ID, 2); !errors.Is(err, domain.ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound for another user, got %v", err)
	}
	if err := svc.Remove(ctx, "u2", item.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for another user, got %v", err)
	}
	if err := svc.Remove(ctx, "u1", item.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	cart, _ := svc.View(ctx, "u1")
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", cart.Items)
	}
}
