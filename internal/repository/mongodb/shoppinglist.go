package mongodb

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Kerhoff/CartoboT/internal/config"
	"github.com/Kerhoff/CartoboT/internal/errs"
	"github.com/Kerhoff/CartoboT/internal/models"
	"github.com/Kerhoff/CartoboT/internal/repository"
)

type shoppingListRepository struct {
	db *config.Database
}

// NewShoppingListRepository creates a new shopping list repository backed by
// MongoDB.
func NewShoppingListRepository(db *config.Database) repository.ShoppingListRepository {
	return &shoppingListRepository{db: db}
}

func (r *shoppingListRepository) GetByOwner(ctx context.Context, ownerID string) (*models.ShoppingList, error) {
	if err := r.db.EnsureConnected(ctx); err != nil {
		return nil, err
	}

	var doc listDocument
	err := r.db.ShoppingLists().FindOne(ctx, bson.M{"owner_id": ownerID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, &errs.StoreError{Op: "fetch shopping list", Key: ownerID, Err: err}
	}

	list, err := doc.toModel()
	if err != nil {
		return nil, &errs.StoreError{Op: "decode shopping list", Key: ownerID, Err: err}
	}
	return list, nil
}

func (r *shoppingListRepository) Create(ctx context.Context, list *models.ShoppingList) (*models.ShoppingList, error) {
	if err := r.db.EnsureConnected(ctx); err != nil {
		return nil, err
	}

	if _, err := r.db.ShoppingLists().InsertOne(ctx, newListDocument(list)); err != nil {
		return nil, &errs.StoreError{Op: "create shopping list", Key: list.OwnerID, Err: err}
	}
	return list, nil
}

func (r *shoppingListRepository) GetOrCreate(ctx context.Context, ownerID string) (*models.ShoppingList, error) {
	list, err := r.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if list != nil {
		return list, nil
	}

	list, err = models.NewShoppingList(ownerID)
	if err != nil {
		return nil, err
	}
	return r.Create(ctx, list)
}

// Update replaces the whole stored document with the serialized list. This is
// deliberately not a targeted patch: the last writer wins in full.
func (r *shoppingListRepository) Update(ctx context.Context, list *models.ShoppingList) error {
	if err := r.db.EnsureConnected(ctx); err != nil {
		return err
	}

	_, err := r.db.ShoppingLists().ReplaceOne(ctx,
		bson.M{"owner_id": list.OwnerID},
		newListDocument(list),
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return &errs.StoreError{Op: "update shopping list", Key: list.OwnerID, Err: err}
	}
	return nil
}

// RemoveItemsByName pulls every matching item out of the stored array in one
// store-side operation. Unlike FindItem-based mutations this removes ALL
// case-insensitive matches, and the timestamp is bumped only when something
// was actually pulled.
func (r *shoppingListRepository) RemoveItemsByName(ctx context.Context, ownerID, name string) (bool, error) {
	if err := r.db.EnsureConnected(ctx); err != nil {
		return false, err
	}

	pattern := "^" + regexp.QuoteMeta(strings.TrimSpace(name)) + "$"
	res, err := r.db.ShoppingLists().UpdateOne(ctx,
		bson.M{"owner_id": ownerID},
		bson.M{"$pull": bson.M{"items": bson.M{
			"name": primitive.Regex{Pattern: pattern, Options: "i"},
		}}},
	)
	if err != nil {
		return false, &errs.StoreError{Op: "remove items", Key: ownerID, Err: err}
	}
	if res.ModifiedCount == 0 {
		return false, nil
	}

	_, err = r.db.ShoppingLists().UpdateOne(ctx,
		bson.M{"owner_id": ownerID},
		bson.M{"$set": bson.M{"updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return true, &errs.StoreError{Op: "remove items", Key: ownerID, Err: err}
	}
	return true, nil
}

func (r *shoppingListRepository) Delete(ctx context.Context, ownerID string) (bool, error) {
	if err := r.db.EnsureConnected(ctx); err != nil {
		return false, err
	}

	res, err := r.db.ShoppingLists().DeleteOne(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return false, &errs.StoreError{Op: "delete shopping list", Key: ownerID, Err: err}
	}
	return res.DeletedCount > 0, nil
}
