package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/CartoboT/internal/errs"
	"github.com/Kerhoff/CartoboT/internal/models"
	"github.com/Kerhoff/CartoboT/internal/repository"
)

// Service is the application layer: one method per use case. Each use case
// loads the owner's list, mutates it in memory, and persists it with a
// whole-document replace. There is no locking around that sequence; two
// concurrent writers to the same list race and the later replace wins in
// full (see the lost-update test).
type Service struct {
	logger *logrus.Logger
	Users  repository.UserRepository
	Lists  repository.ShoppingListRepository
}

// ItemUpdate carries a partial item update. Nil fields are left untouched.
type ItemUpdate struct {
	Quantity *float64
	Unit     *string
	Category *string
	Notes    *string
}

// New creates a new Service with all required dependencies.
func New(logger *logrus.Logger, users repository.UserRepository, lists repository.ShoppingListRepository) *Service {
	return &Service{logger: logger, Users: users, Lists: lists}
}

// EnsureUser returns the user for the external ID, creating a default record
// on first reference.
func (s *Service) EnsureUser(ctx context.Context, externalID string) (*models.User, error) {
	user, err := s.Users.GetOrCreate(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create user %s: %w", externalID, err)
	}
	return user, nil
}

// AddItem validates and appends a new item to the owner's list, creating the
// list if it does not exist yet.
func (s *Service) AddItem(ctx context.Context, ownerID, name string, quantity float64, unit, category, notes string) (*models.ShoppingList, *models.ShoppingItem, error) {
	item, err := models.NewShoppingItem(name, quantity, unit, category, notes)
	if err != nil {
		return nil, nil, err
	}

	list, err := s.Lists.GetOrCreate(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}

	list.AddItem(item)

	if err := s.Lists.Update(ctx, list); err != nil {
		return nil, nil, err
	}

	s.logger.WithFields(logrus.Fields{"owner_id": ownerID, "item": item.Name}).Info("Item added to shopping list")
	return list, item, nil
}

// RemoveItem removes every item matching the name case-insensitively, using
// the store-level bulk path. Returns the updated list and the number of
// items removed.
func (s *Service) RemoveItem(ctx context.Context, ownerID, name string) (*models.ShoppingList, int, error) {
	list, err := s.loadList(ctx, ownerID)
	if err != nil {
		return nil, 0, err
	}

	count := list.CountMatching(name)
	if count == 0 {
		return nil, 0, &errs.NotFoundError{Resource: "item", Key: strings.TrimSpace(name)}
	}

	if _, err := s.Lists.RemoveItemsByName(ctx, ownerID, name); err != nil {
		return nil, 0, err
	}
	list.RemoveItem(name)

	s.logger.WithFields(logrus.Fields{"owner_id": ownerID, "item": name, "count": count}).Info("Items removed from shopping list")
	return list, count, nil
}

// UpdateItem applies a partial update to the first item matching the name
// case-insensitively. Only the fields set on upd are overwritten.
func (s *Service) UpdateItem(ctx context.Context, ownerID, name string, upd ItemUpdate) (*models.ShoppingList, *models.ShoppingItem, error) {
	list, item, err := s.loadItem(ctx, ownerID, name)
	if err != nil {
		return nil, nil, err
	}

	if upd.Quantity != nil {
		item.Quantity = *upd.Quantity
	}
	if upd.Unit != nil {
		item.Unit = strings.TrimSpace(*upd.Unit)
	}
	if upd.Category != nil {
		item.Category = strings.TrimSpace(*upd.Category)
	}
	if upd.Notes != nil {
		item.Notes = strings.TrimSpace(*upd.Notes)
	}

	if err := item.Validate(); err != nil {
		return nil, nil, err
	}

	list.Touch()
	if err := s.Lists.Update(ctx, list); err != nil {
		return nil, nil, err
	}

	s.logger.WithFields(logrus.Fields{"owner_id": ownerID, "item": item.Name}).Info("Item updated")
	return list, item, nil
}

// CheckItem marks the first matching item as purchased.
func (s *Service) CheckItem(ctx context.Context, ownerID, name string) (*models.ShoppingList, *models.ShoppingItem, error) {
	list, item, err := s.loadItem(ctx, ownerID, name)
	if err != nil {
		return nil, nil, err
	}

	item.MarkChecked()
	list.Touch()

	if err := s.Lists.Update(ctx, list); err != nil {
		return nil, nil, err
	}

	s.logger.WithFields(logrus.Fields{"owner_id": ownerID, "item": item.Name}).Info("Item checked")
	return list, item, nil
}

// UncheckItem reverts the first matching item to unpurchased.
func (s *Service) UncheckItem(ctx context.Context, ownerID, name string) (*models.ShoppingList, *models.ShoppingItem, error) {
	list, item, err := s.loadItem(ctx, ownerID, name)
	if err != nil {
		return nil, nil, err
	}

	item.MarkUnchecked()
	list.Touch()

	if err := s.Lists.Update(ctx, list); err != nil {
		return nil, nil, err
	}

	s.logger.WithFields(logrus.Fields{"owner_id": ownerID, "item": item.Name}).Info("Item unchecked")
	return list, item, nil
}

// GetShoppingList returns the owner's list, creating an empty one for a
// brand-new owner.
func (s *Service) GetShoppingList(ctx context.Context, ownerID string) (*models.ShoppingList, error) {
	return s.Lists.GetOrCreate(ctx, ownerID)
}

// ClearCheckedItems removes all purchased items and returns the count.
func (s *Service) ClearCheckedItems(ctx context.Context, ownerID string) (*models.ShoppingList, int, error) {
	list, err := s.loadList(ctx, ownerID)
	if err != nil {
		return nil, 0, err
	}

	count := list.ClearCheckedItems()
	if err := s.Lists.Update(ctx, list); err != nil {
		return nil, 0, err
	}

	s.logger.WithFields(logrus.Fields{"owner_id": ownerID, "count": count}).Info("Checked items cleared")
	return list, count, nil
}

// ClearAllItems empties the list and returns the prior item count.
func (s *Service) ClearAllItems(ctx context.Context, ownerID string) (*models.ShoppingList, int, error) {
	list, err := s.loadList(ctx, ownerID)
	if err != nil {
		return nil, 0, err
	}

	count := list.ClearAllItems()
	if err := s.Lists.Update(ctx, list); err != nil {
		return nil, 0, err
	}

	s.logger.WithFields(logrus.Fields{"owner_id": ownerID, "count": count}).Info("All items cleared")
	return list, count, nil
}

// DeleteList removes the owner's list document entirely.
func (s *Service) DeleteList(ctx context.Context, ownerID string) (bool, error) {
	deleted, err := s.Lists.Delete(ctx, ownerID)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.WithFields(logrus.Fields{"owner_id": ownerID}).Info("Shopping list deleted")
	}
	return deleted, nil
}

// loadList fetches an existing list, failing with a not-found error for
// operations that require one.
func (s *Service) loadList(ctx context.Context, ownerID string) (*models.ShoppingList, error) {
	list, err := s.Lists.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, &errs.NotFoundError{Resource: "shopping list", Key: ownerID}
	}
	return list, nil
}

func (s *Service) loadItem(ctx context.Context, ownerID, name string) (*models.ShoppingList, *models.ShoppingItem, error) {
	list, err := s.loadList(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}

	item := list.FindItem(name)
	if item == nil {
		return nil, nil, &errs.NotFoundError{Resource: "item", Key: strings.TrimSpace(name)}
	}
	return list, item, nil
}
