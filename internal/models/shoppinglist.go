package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Kerhoff/CartoboT/internal/errs"
)

// DefaultListName is used when a list is created lazily for a user.
const DefaultListName = "My Shopping List"

const (
	maxItemNameLen = 200
	maxNotesLen    = 500
	maxListNameLen = 100
)

// ShoppingItem is a single entry on a shopping list.
type ShoppingItem struct {
	ItemID    string     `json:"item_id"`
	Name      string     `json:"name"`
	Quantity  float64    `json:"quantity"`
	Unit      string     `json:"unit"`
	Category  string     `json:"category"`
	Notes     string     `json:"notes"`
	Checked   bool       `json:"checked"`
	AddedAt   time.Time  `json:"added_at"`
	CheckedAt *time.Time `json:"checked_at,omitempty"`
}

// NewShoppingItem creates a validated item with a generated ID. String fields
// are trimmed before validation.
func NewShoppingItem(name string, quantity float64, unit, category, notes string) (*ShoppingItem, error) {
	item := &ShoppingItem{
		ItemID:   uuid.NewString(),
		Name:     strings.TrimSpace(name),
		Quantity: quantity,
		Unit:     strings.TrimSpace(unit),
		Category: strings.TrimSpace(category),
		Notes:    strings.TrimSpace(notes),
		AddedAt:  time.Now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// Validate checks the item invariants; call again after mutating fields.
// Length bounds count characters, not bytes.
func (i *ShoppingItem) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return &errs.ValidationError{Field: "name", Message: "Item name cannot be empty"}
	}
	if n := utf8.RuneCountInString(i.Name); n > maxItemNameLen {
		return &errs.ValidationError{Field: "name", Message: "Item name is too long (max 200 characters)", Value: n}
	}
	if i.Quantity < 0 {
		return &errs.ValidationError{Field: "quantity", Message: "Item quantity cannot be negative", Value: i.Quantity}
	}
	if n := utf8.RuneCountInString(i.Notes); n > maxNotesLen {
		return &errs.ValidationError{Field: "notes", Message: "Item notes are too long (max 500 characters)", Value: n}
	}
	return nil
}

// MarkChecked marks the item as purchased and stamps the checked time.
func (i *ShoppingItem) MarkChecked() {
	now := time.Now().UTC()
	i.Checked = true
	i.CheckedAt = &now
}

// MarkUnchecked reverts the item to unpurchased and clears the checked time.
func (i *ShoppingItem) MarkUnchecked() {
	i.Checked = false
	i.CheckedAt = nil
}

// ShoppingList is the single list owned by a user, keyed by the owner's
// external ID. Item order is insertion order.
type ShoppingList struct {
	OwnerID   string          `json:"owner_id"`
	ListName  string          `json:"list_name"`
	Items     []*ShoppingItem `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewShoppingList creates a validated empty list with the default name.
func NewShoppingList(ownerID string) (*ShoppingList, error) {
	now := time.Now().UTC()
	l := &ShoppingList{
		OwnerID:   ownerID,
		ListName:  DefaultListName,
		Items:     []*ShoppingItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Validate checks the list invariants.
func (l *ShoppingList) Validate() error {
	if strings.TrimSpace(l.OwnerID) == "" {
		return &errs.ValidationError{Field: "owner_id", Message: "Owner ID cannot be empty"}
	}
	if strings.TrimSpace(l.ListName) == "" {
		return &errs.ValidationError{Field: "list_name", Message: "List name cannot be empty"}
	}
	if n := utf8.RuneCountInString(l.ListName); n > maxListNameLen {
		return &errs.ValidationError{Field: "list_name", Message: "List name is too long (max 100 characters)", Value: n}
	}
	return nil
}

// AddItem appends the item. Duplicate names are allowed.
func (l *ShoppingList) AddItem(item *ShoppingItem) {
	l.Items = append(l.Items, item)
	l.Touch()
}

// FindItem returns the first item whose name matches case-insensitively, or
// nil when there is no match.
func (l *ShoppingList) FindItem(name string) *ShoppingItem {
	name = strings.TrimSpace(name)
	for _, item := range l.Items {
		if strings.EqualFold(item.Name, name) {
			return item
		}
	}
	return nil
}

// RemoveItem removes ALL items whose name matches case-insensitively, not
// just the first. Reports whether anything was removed.
func (l *ShoppingList) RemoveItem(name string) bool {
	name = strings.TrimSpace(name)
	kept := l.Items[:0]
	for _, item := range l.Items {
		if !strings.EqualFold(item.Name, name) {
			kept = append(kept, item)
		}
	}
	removed := len(kept) < len(l.Items)
	l.Items = kept
	if removed {
		l.Touch()
	}
	return removed
}

// CountMatching returns how many items match the name case-insensitively.
func (l *ShoppingList) CountMatching(name string) int {
	name = strings.TrimSpace(name)
	n := 0
	for _, item := range l.Items {
		if strings.EqualFold(item.Name, name) {
			n++
		}
	}
	return n
}

// UncheckedItems returns the items still to buy, in insertion order.
func (l *ShoppingList) UncheckedItems() []*ShoppingItem {
	var items []*ShoppingItem
	for _, item := range l.Items {
		if !item.Checked {
			items = append(items, item)
		}
	}
	return items
}

// CheckedItems returns the purchased items, in insertion order.
func (l *ShoppingList) CheckedItems() []*ShoppingItem {
	var items []*ShoppingItem
	for _, item := range l.Items {
		if item.Checked {
			items = append(items, item)
		}
	}
	return items
}

// ClearCheckedItems removes all purchased items and returns how many were
// removed.
func (l *ShoppingList) ClearCheckedItems() int {
	unchecked := l.UncheckedItems()
	removed := len(l.Items) - len(unchecked)
	if unchecked == nil {
		unchecked = []*ShoppingItem{}
	}
	l.Items = unchecked
	if removed > 0 {
		l.Touch()
	}
	return removed
}

// ClearAllItems empties the list and returns the prior item count.
func (l *ShoppingList) ClearAllItems() int {
	removed := len(l.Items)
	l.Items = []*ShoppingItem{}
	if removed > 0 {
		l.Touch()
	}
	return removed
}

// Touch refreshes the modification timestamp.
func (l *ShoppingList) Touch() {
	l.UpdatedAt = time.Now().UTC()
}
