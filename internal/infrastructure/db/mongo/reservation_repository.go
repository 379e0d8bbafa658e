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

type ReservationRepository struct {
	coll *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{coll: db.Collection(reservationsCollection)}
}

type mongoReservation struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Activity  string             `bson:"activity"`
	Date      time.Time          `bson:"date"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (m *mongoReservation) toDomain() *domain.Reservation {
	return &domain.Reservation{
		ID:        m.ID.Hex(),
		UserID:    m.UserID,
		Activity:  m.Activity,
		Date:      m.Date.UTC(),
		Status:    m.Status,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	doc := mongoReservation{
		ID:        primitive.NewObjectID(),
		UserID:    res.UserID,
		Activity:  res.Activity,
		Date:      res.Date,
		Status:    res.Status,
		CreatedAt: res.CreatedAt,
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert reservation: %w", err)
	}
	res.ID = doc.ID.Hex()
	res.CreatedAt = doc.CreatedAt
	return nil
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Reservation, error) {
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoReservation
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode reservations: %w", err)
	}

	out := make([]*domain.Reservation, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *ReservationRepository) FindForUser(ctx context.Context, id, userID string) (*domain.Reservation, error) {
	oid, err := objectID(id, domain.ErrReservationNotFound)
	if err != nil {
		return nil, err
	}
	var doc mongoReservation
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid, "user_id": userID}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, fmt.Errorf("find reservation: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ReservationRepository) DeleteForUser(ctx context.Context, id, userID string) error {
	oid, err := objectID(id, domain.ErrReservationNotFound)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

func (r *ReservationRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count reservations: %w", err)
	}
	return n, nil
}
