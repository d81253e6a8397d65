// Package memory provides in-memory implementations of the repository
// interfaces. Documents are deep-copied at the load/store boundary so callers
// observe the same read-modify-write behavior as the document store,
// including the last-writer-wins whole-document replace.
package memory

import (
	"context"
	"sync"

	"github.com/Kerhoff/CartoboT/internal/models"
	"github.com/Kerhoff/CartoboT/internal/repository"
)

type userRepository struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

// NewUserRepository creates an empty in-memory user repository.
func NewUserRepository() repository.UserRepository {
	return &userRepository{users: make(map[string]*models.User)}
}

func (r *userRepository) GetByExternalID(_ context.Context, externalID string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[externalID]
	if !ok {
		return nil, nil
	}
	return cloneUser(user), nil
}

func (r *userRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.users[user.ExternalID]; ok {
		return cloneUser(existing), nil
	}
	r.users[user.ExternalID] = cloneUser(user)
	return user, nil
}

func (r *userRepository) GetOrCreate(ctx context.Context, externalID string) (*models.User, error) {
	user, err := r.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user, err = models.NewUser(externalID)
	if err != nil {
		return nil, err
	}
	return r.Create(ctx, user)
}

type shoppingListRepository struct {
	mu    sync.RWMutex
	lists map[string]*models.ShoppingList
}

// NewShoppingListRepository creates an empty in-memory shopping list
// repository.
func NewShoppingListRepository() repository.ShoppingListRepository {
	return &shoppingListRepository{lists: make(map[string]*models.ShoppingList)}
}

func (r *shoppingListRepository) GetByOwner(_ context.Context, ownerID string) (*models.ShoppingList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list, ok := r.lists[ownerID]
	if !ok {
		return nil, nil
	}
	return cloneList(list), nil
}

func (r *shoppingListRepository) Create(_ context.Context, list *models.ShoppingList) (*models.ShoppingList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lists[list.OwnerID] = cloneList(list)
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

func (r *shoppingListRepository) Update(_ context.Context, list *models.ShoppingList) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Whole-document replace, upsert on absence.
	r.lists[list.OwnerID] = cloneList(list)
	return nil
}

func (r *shoppingListRepository) RemoveItemsByName(_ context.Context, ownerID, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, ok := r.lists[ownerID]
	if !ok {
		return false, nil
	}
	return list.RemoveItem(name), nil
}

func (r *shoppingListRepository) Delete(_ context.Context, ownerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lists[ownerID]; !ok {
		return false, nil
	}
	delete(r.lists, ownerID)
	return true, nil
}

func cloneUser(u *models.User) *models.User {
	clone := *u
	return &clone
}

func cloneList(l *models.ShoppingList) *models.ShoppingList {
	clone := *l
	clone.Items = make([]*models.ShoppingItem, 0, len(l.Items))
	for _, item := range l.Items {
		itemClone := *item
		if item.CheckedAt != nil {
			checkedAt := *item.CheckedAt
			itemClone.CheckedAt = &checkedAt
		}
		clone.Items = append(clone.Items, &itemClone)
	}
	return &clone
}
