package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/playverse/gamestore/internal/core/domain"
)

type CartRepository struct {
	coll *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{coll: db.Collection(cartsCollection)}
}

type mongoCartItem struct {
	ID       string  `bson:"id"`
	GameID   string  `bson:"game_id"`
	Name     string  `bson:"name"`
	Quantity int     `bson:"quantity"`
	Price    float64 `bson:"price"`
}

type mongoCart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Items     []mongoCartItem    `bson:"items"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (m *mongoCart) toDomain() *domain.Cart {
	items := make([]domain.CartItem, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, domain.CartItem{
			ID:       it.ID,
			GameID:   it.GameID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}
	return &domain.Cart{
		ID:        m.ID.Hex(),
		UserID:    m.UserID,
		Items:     items,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

// GetOrCreate upserts on the unique user_id index so concurrent first visits
// end up sharing one cart.
func (r *CartRepository) GetOrCreate(ctx context.Context, userID string) (*domain.Cart, error) {
	now := time.Now().UTC()
	update := bson.M{"$setOnInsert": bson.M{
		"user_id":    userID,
		"items":      bson.A{},
		"created_at": now,
		"updated_at": now,
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc mongoCart
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"user_id": userID}, update, opts).Decode(&doc); err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	items := make([]mongoCartItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, mongoCartItem(it))
	}

	now := time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx, bson.M{"user_id": cart.UserID}, bson.M{"$set": bson.M{
		"items":      items,
		"updated_at": now,
	}})
	if err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("save cart: no cart for user %s", cart.UserID)
	}
	cart.UpdatedAt = now
	return nil
}
