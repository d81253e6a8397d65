package repository

import (
	"context"

	"github.com/Kerhoff/CartoboT/internal/models"
)

// UserRepository defines the interface for user persistence. "Not found" is
// reported as a nil user with a nil error, never as an error.
type UserRepository interface {
	// GetByExternalID returns the stored user, or nil when absent.
	GetByExternalID(ctx context.Context, externalID string) (*models.User, error)
	// Create inserts the user. When another caller created the same external
	// ID concurrently, the existing record is returned instead of an error.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetOrCreate returns the existing user or creates a default one. The
	// composite is not atomic; the unique index plus Create's duplicate
	// handling make it converge on a single record.
	GetOrCreate(ctx context.Context, externalID string) (*models.User, error)
}

// ShoppingListRepository defines the interface for shopping list persistence.
// Lists are keyed by the owner's external ID, one list per owner.
type ShoppingListRepository interface {
	// GetByOwner returns the stored list, or nil when absent.
	GetByOwner(ctx context.Context, ownerID string) (*models.ShoppingList, error)
	// Create inserts a new list document.
	Create(ctx context.Context, list *models.ShoppingList) (*models.ShoppingList, error)
	// GetOrCreate returns the existing list or creates an empty default one.
	GetOrCreate(ctx context.Context, ownerID string) (*models.ShoppingList, error)
	// Update replaces the entire stored document with the serialized list
	// (upsert on absence). Last writer wins; a concurrent update between a
	// load and this replace is silently overwritten.
	Update(ctx context.Context, list *models.ShoppingList) error
	// RemoveItemsByName removes ALL items whose name matches the given name
	// case-insensitively, directly in the store. Reports whether the stored
	// document changed.
	RemoveItemsByName(ctx context.Context, ownerID, name string) (bool, error)
	// Delete removes the list document and reports whether one was deleted.
	Delete(ctx context.Context, ownerID string) (bool, error)
}
