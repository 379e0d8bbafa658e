package mongo

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/playverse/gamestore/internal/core/domain"
)

func dupErr(index string) error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{
		Code:    11000,
		Message: "E11000 duplicate key error collection: playverse.users index: " + index + " dup key",
	}}}
}

func TestDuplicateIndex(t *testing.T) {
	idx, dup := duplicateIndex(dupErr(userUsernameIndex), userEmailIndex, userUsernameIndex)
	if !dup || idx != userUsernameIndex {
		t.Fatalf("expected username index, got %q dup=%v", idx, dup)
	}

	idx, dup = duplicateIndex(dupErr("other_index"), userEmailIndex)
	if !dup || idx != "" {
		t.Fatalf("expected unnamed duplicate, got %q dup=%v", idx, dup)
	}

	if _, dup := duplicateIndex(errors.New("boom"), userEmailIndex); dup {
		t.Fatalf("plain errors are not duplicates")
	}
}

func TestMapGameWriteError_Slug(t *testing.T) {
	err := mapGameWriteError("insert game", dupErr(gameSlugIndex))
	var fe domain.FieldErrors
	if !errors.As(err, &fe) || fe["slug"] == "" {
		t.Fatalf("expected slug field error, got %v", err)
	}

	err = mapGameWriteError("insert game", errors.New("network"))
	if errors.As(err, &fe) {
		t.Fatalf("non-duplicate errors must not become field errors")
	}
}

func TestObjectID_MalformedIsNotFound(t *testing.T) {
	if _, err := objectID("not-hex", domain.ErrGameNotFound); !errors.Is(err, domain.ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
	if _, err := objectID("65a1b2c3d4e5f60718293a4b", domain.ErrGameNotFound); err != nil {
		t.Fatalf("valid hex rejected: %v", err)
	}
}
