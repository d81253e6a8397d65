package mongodb

import (
	"fmt"
	"time"

	"github.com/Kerhoff/CartoboT/internal/models"
)

// The gateway owns the translation between domain objects and stored
// documents. Item timestamps are stored as ISO-8601 strings; user and list
// timestamps are stored as native datetimes.

type userDocument struct {
	ExternalID  string    `bson:"external_id"`
	DisplayName string    `bson:"display_name"`
	Email       string    `bson:"email,omitempty"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func newUserDocument(u *models.User) userDocument {
	return userDocument{
		ExternalID:  u.ExternalID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (d userDocument) toModel() *models.User {
	return &models.User{
		ExternalID:  d.ExternalID,
		DisplayName: d.DisplayName,
		Email:       d.Email,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type itemDocument struct {
	ItemID   string  `bson:"item_id"`
	Name     string  `bson:"name"`
	Quantity float64 `bson:"quantity"`
	Unit     string  `bson:"unit"`
	Category string  `bson:"category"`
	Notes    string  `bson:"notes"`
	Checked  bool    `bson:"checked"`
	// RFC 3339; checked_at is absent while the item is unchecked.
	AddedAt   string  `bson:"added_at"`
	CheckedAt *string `bson:"checked_at,omitempty"`
}

func newItemDocument(i *models.ShoppingItem) itemDocument {
	doc := itemDocument{
		ItemID:   i.ItemID,
		Name:     i.Name,
		Quantity: i.Quantity,
		Unit:     i.Unit,
		Category: i.Category,
		Notes:    i.Notes,
		Checked:  i.Checked,
		AddedAt:  i.AddedAt.Format(time.RFC3339Nano),
	}
	if i.CheckedAt != nil {
		checkedAt := i.CheckedAt.Format(time.RFC3339Nano)
		doc.CheckedAt = &checkedAt
	}
	return doc
}

func (d itemDocument) toModel() (*models.ShoppingItem, error) {
	addedAt, err := time.Parse(time.RFC3339Nano, d.AddedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse added_at for item %s: %w", d.ItemID, err)
	}

	item := &models.ShoppingItem{
		ItemID:   d.ItemID,
		Name:     d.Name,
		Quantity: d.Quantity,
		Unit:     d.Unit,
		Category: d.Category,
		Notes:    d.Notes,
		Checked:  d.Checked,
		AddedAt:  addedAt,
	}
	if d.CheckedAt != nil {
		checkedAt, err := time.Parse(time.RFC3339Nano, *d.CheckedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse checked_at for item %s: %w", d.ItemID, err)
		}
		item.CheckedAt = &checkedAt
	}
	return item, nil
}

type listDocument struct {
	OwnerID   string         `bson:"owner_id"`
	ListName  string         `bson:"list_name"`
	Items     []itemDocument `bson:"items"`
	CreatedAt time.Time      `bson:"created_at"`
	UpdatedAt time.Time      `bson:"updated_at"`
}

func newListDocument(l *models.ShoppingList) listDocument {
	items := make([]itemDocument, 0, len(l.Items))
	for _, item := range l.Items {
		items = append(items, newItemDocument(item))
	}
	return listDocument{
		OwnerID:   l.OwnerID,
		ListName:  l.ListName,
		Items:     items,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func (d listDocument) toModel() (*models.ShoppingList, error) {
	items := make([]*models.ShoppingItem, 0, len(d.Items))
	for _, doc := range d.Items {
		item, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return &models.ShoppingList{
		OwnerID:   d.OwnerID,
		ListName:  d.ListName,
		Items:     items,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}
