package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/playverse/gamestore/internal/core/domain"
	"github.com/playverse/gamestore/internal/core/ports"
)

const gameSlugIndex = "games_slug_unique"

type GameRepository struct {
	coll *mongo.Collection
}

func NewGameRepository(db *mongo.Database) *GameRepository {
	return &GameRepository{coll: db.Collection(gamesCollection)}
}

type mongoGame struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Slug        string             `bson:"slug"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Category    string             `bson:"category"`
	Image       string             `bson:"image,omitempty"`
	Stock       int                `bson:"stock"`
	Active      bool               `bson:"active"`
}

func fromDomainGame(g *domain.Game) mongoGame {
	return mongoGame{
		Name:        g.Name,
		Slug:        g.Slug,
		Description: g.Description,
		Price:       g.Price,
		Category:    string(g.Category),
		Image:       g.Image,
		Stock:       g.Stock,
		Active:      g.Active,
	}
}

func (m *mongoGame) toDomain() *domain.Game {
	return &domain.Game{
		ID:          m.ID.Hex(),
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		Price:       m.Price,
		Category:    domain.Category(m.Category),
		Image:       m.Image,
		Stock:       m.Stock,
		Active:      m.Active,
	}
}

func (r *GameRepository) Create(ctx context.Context, g *domain.Game) error {
	doc := fromDomainGame(g)
	doc.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return mapGameWriteError("insert game", err)
	}
	g.ID = doc.ID.Hex()
	return nil
}

func (r *GameRepository) Update(ctx context.Context, g *domain.Game) error {
	oid, err := objectID(g.ID, domain.ErrGameNotFound)
	if err != nil {
		return err
	}
	doc := fromDomainGame(g)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return mapGameWriteError("update game", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrGameNotFound
	}
	return nil
}

func (r *GameRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id, domain.ErrGameNotFound)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrGameNotFound
	}
	return nil
}

func (r *GameRepository) FindByID(ctx context.Context, id string) (*domain.Game, error) {
	oid, err := objectID(id, domain.ErrGameNotFound)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *GameRepository) FindBySlug(ctx context.Context, slug string) (*domain.Game, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *GameRepository) List(ctx context.Context, filter ports.GameFilter) ([]*domain.Game, error) {
	q := bson.M{}
	if filter.Category != "" {
		q["category"] = string(filter.Category)
	}
	if filter.ActiveOnly {
		q["active"] = true
	}

	cur, err := r.coll.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoGame
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode games: %w", err)
	}

	games := make([]*domain.Game, 0, len(docs))
	for i := range docs {
		games = append(games, docs[i].toDomain())
	}
	return games, nil
}

func (r *GameRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count games: %w", err)
	}
	return n, nil
}

func (r *GameRepository) findOne(ctx context.Context, filter bson.M) (*domain.Game, error) {
	var doc mongoGame
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrGameNotFound
		}
		return nil, fmt.Errorf("find game: %w", err)
	}
	return doc.toDomain(), nil
}

func mapGameWriteError(op string, err error) error {
	if _, dup := duplicateIndex(err, gameSlugIndex); dup {
		return domain.FieldErrors{"slug": "a game with this slug already exists"}
	}
	return fmt.Errorf("%s: %w", op, err)
}
