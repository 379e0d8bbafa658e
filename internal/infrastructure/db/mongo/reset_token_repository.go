package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/playverse/gamestore/internal/core/domain"
)

const resetTokenOpenIndex = "reset_tokens_open_user_unique"

// errOpenTokenExists is returned when a second unconsumed token for one user
// slips past the transaction, e.g. a write made outside of it.
var errOpenTokenExists = errors.New("user already has an unconsumed reset token")

// ResetTokenRepository keeps reset tokens next to the users they belong to so
// both can change inside one transaction.
type ResetTokenRepository struct {
	client *mongo.Client
	tokens *mongo.Collection
	users  *mongo.Collection
}

func NewResetTokenRepository(db *mongo.Database) *ResetTokenRepository {
	return &ResetTokenRepository{
		client: db.Client(),
		tokens: db.Collection(resetTokensCollection),
		users:  db.Collection(usersCollection),
	}
}

type mongoResetToken struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     primitive.ObjectID `bson:"user_id"`
	TokenHash  string             `bson:"token_hash"`
	CreatedAt  time.Time          `bson:"created_at"`
	Consumed   bool               `bson:"consumed"`
	ConsumedAt *time.Time         `bson:"consumed_at,omitempty"`
}

func (m *mongoResetToken) toDomain() *domain.ResetToken {
	return &domain.ResetToken{
		ID:         m.ID.Hex(),
		UserID:     m.UserID.Hex(),
		TokenHash:  m.TokenHash,
		CreatedAt:  m.CreatedAt.UTC(),
		Consumed:   m.Consumed,
		ConsumedAt: m.ConsumedAt,
	}
}

func (r *ResetTokenRepository) Replace(ctx context.Context, token *domain.ResetToken) error {
	uid, err := objectID(token.UserID, domain.ErrUserNotFound)
	if err != nil {
		return err
	}

	doc := mongoResetToken{
		ID:        primitive.NewObjectID(),
		UserID:    uid,
		TokenHash: token.TokenHash,
		CreatedAt: token.CreatedAt,
	}

	err = r.transact(ctx, func(sc mongo.SessionContext) error {
		// Writing the owner document makes concurrent issues for one user
		// collide, so the transaction retries instead of both inserting.
		res, err := r.users.UpdateOne(sc, bson.M{"_id": uid}, bson.M{"$set": bson.M{"reset_requested_at": doc.CreatedAt}})
		if err != nil {
			return fmt.Errorf("mark reset request: %w", err)
		}
		if res.MatchedCount == 0 {
			return domain.ErrUserNotFound
		}
		if _, err := r.tokens.DeleteMany(sc, openTokensFilter(uid)); err != nil {
			return fmt.Errorf("delete previous tokens: %w", err)
		}
		if _, err := r.tokens.InsertOne(sc, doc); err != nil {
			if _, dup := duplicateIndex(err, resetTokenOpenIndex); dup {
				return fmt.Errorf("insert token: %w", errOpenTokenExists)
			}
			return fmt.Errorf("insert token: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	token.ID = doc.ID.Hex()
	return nil
}

func (r *ResetTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*domain.ResetToken, error) {
	var doc mongoResetToken
	if err := r.tokens.FindOne(ctx, bson.M{"token_hash": tokenHash}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("find token: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ResetTokenRepository) ConsumeAndSetPassword(ctx context.Context, tokenHash, passwordHash string, notBefore, now time.Time) error {
	return r.transact(ctx, func(sc mongo.SessionContext) error {
		update := bson.M{"$set": bson.M{"consumed": true, "consumed_at": now}}

		var doc mongoResetToken
		err := r.tokens.FindOneAndUpdate(sc, consumeFilter(tokenHash, notBefore), update,
			options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
		if isNoDocuments(err) {
			return r.rejection(sc, tokenHash)
		}
		if err != nil {
			return fmt.Errorf("consume token: %w", err)
		}

		res, err := r.users.UpdateOne(sc, bson.M{"_id": doc.UserID}, bson.M{"$set": bson.M{
			"password_hash": passwordHash,
			"updated_at":    now,
		}})
		if err != nil {
			return fmt.Errorf("set password: %w", err)
		}
		if res.MatchedCount == 0 {
			return domain.ErrTokenNotFound
		}
		return nil
	})
}

// rejection explains why the compare-and-set in ConsumeAndSetPassword missed.
func (r *ResetTokenRepository) rejection(ctx context.Context, tokenHash string) error {
	var doc mongoResetToken
	err := r.tokens.FindOne(ctx, bson.M{"token_hash": tokenHash}).Decode(&doc)
	switch {
	case isNoDocuments(err):
		return classifyRejection(nil)
	case err != nil:
		return fmt.Errorf("find token: %w", err)
	}
	return classifyRejection(&doc)
}

// openTokensFilter matches the unconsumed tokens of one user.
func openTokensFilter(uid primitive.ObjectID) bson.M {
	return bson.M{"user_id": uid, "consumed": false}
}

// consumeFilter matches a token that is still usable: not consumed and
// created strictly after notBefore (now minus the validity window).
func consumeFilter(tokenHash string, notBefore time.Time) bson.M {
	return bson.M{
		"token_hash": tokenHash,
		"consumed":   false,
		"created_at": bson.M{"$gt": notBefore},
	}
}

// classifyRejection maps the stored state of a token that failed
// consumeFilter to the error the caller sees. A nil doc means no such token.
func classifyRejection(doc *mongoResetToken) error {
	switch {
	case doc == nil:
		return domain.ErrTokenNotFound
	case doc.Consumed:
		return domain.ErrTokenAlreadyUsed
	default:
		return domain.ErrTokenExpired
	}
}

func (r *ResetTokenRepository) transact(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
