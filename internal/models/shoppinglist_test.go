package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/CartoboT/internal/errs"
)

func mustItem(t *testing.T, name string) *ShoppingItem {
	t.Helper()
	item, err := NewShoppingItem(name, 1, "", "", "")
	require.NoError(t, err)
	return item
}

func mustList(t *testing.T) *ShoppingList {
	t.Helper()
	list, err := NewShoppingList("user-1")
	require.NoError(t, err)
	return list
}

func TestNewShoppingItem(t *testing.T) {
	t.Run("valid item gets defaults", func(t *testing.T) {
		item, err := NewShoppingItem("  Milk  ", 2, " l ", " dairy ", " fresh ")
		require.NoError(t, err)
		assert.Equal(t, "Milk", item.Name)
		assert.Equal(t, 2.0, item.Quantity)
		assert.Equal(t, "l", item.Unit)
		assert.Equal(t, "dairy", item.Category)
		assert.Equal(t, "fresh", item.Notes)
		assert.False(t, item.Checked)
		assert.Nil(t, item.CheckedAt)
		assert.NotEmpty(t, item.ItemID)
		assert.False(t, item.AddedAt.IsZero())
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := NewShoppingItem("   ", 1, "", "", "")
		var verr *errs.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "name", verr.Field)
	})

	t.Run("negative quantity rejected", func(t *testing.T) {
		_, err := NewShoppingItem("Milk", -1, "", "", "")
		var verr *errs.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "quantity", verr.Field)
	})

	t.Run("overlong name rejected", func(t *testing.T) {
		_, err := NewShoppingItem(strings.Repeat("a", 201), 1, "", "", "")
		var verr *errs.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "name", verr.Field)
	})

	t.Run("overlong notes rejected", func(t *testing.T) {
		_, err := NewShoppingItem("Milk", 1, "", "", strings.Repeat("n", 501))
		var verr *errs.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "notes", verr.Field)
	})

	t.Run("zero quantity is allowed", func(t *testing.T) {
		_, err := NewShoppingItem("Milk", 0, "", "", "")
		assert.NoError(t, err)
	})

	t.Run("length limits count characters not bytes", func(t *testing.T) {
		// 150 two-byte runes: 300 bytes, well within the 200-character limit.
		_, err := NewShoppingItem(strings.Repeat("я", 150), 1, "", "", "")
		assert.NoError(t, err)

		_, err = NewShoppingItem("Milk", 1, "", "", strings.Repeat("я", 500))
		assert.NoError(t, err)

		_, err = NewShoppingItem(strings.Repeat("я", 201), 1, "", "", "")
		var verr *errs.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "name", verr.Field)
		assert.Equal(t, 201, verr.Value)
	})
}

func TestMarkCheckedUnchecked(t *testing.T) {
	item := mustItem(t, "Milk")

	item.MarkChecked()
	assert.True(t, item.Checked)
	require.NotNil(t, item.CheckedAt)

	item.MarkUnchecked()
	assert.False(t, item.Checked)
	assert.Nil(t, item.CheckedAt)
}

func TestNewShoppingList(t *testing.T) {
	list := mustList(t)
	assert.Equal(t, DefaultListName, list.ListName)
	assert.Empty(t, list.Items)

	_, err := NewShoppingList("  ")
	var verr *errs.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "owner_id", verr.Field)
}

func TestListNameValidation(t *testing.T) {
	list := mustList(t)
	list.ListName = strings.Repeat("x", 101)

	var verr *errs.ValidationError
	require.ErrorAs(t, list.Validate(), &verr)
	assert.Equal(t, "list_name", verr.Field)

	// 100 multi-byte characters fit; the limit is not a byte count.
	list.ListName = strings.Repeat("я", 100)
	assert.NoError(t, list.Validate())
}

func TestAddItemAllowsDuplicates(t *testing.T) {
	list := mustList(t)
	before := list.UpdatedAt

	list.AddItem(mustItem(t, "Eggs"))
	list.AddItem(mustItem(t, "eggs"))

	assert.Len(t, list.Items, 2)
	assert.False(t, list.UpdatedAt.Before(before))
}

func TestFindItemFirstMatchCaseInsensitive(t *testing.T) {
	list := mustList(t)
	first := mustItem(t, "Eggs")
	second := mustItem(t, "EGGS")
	list.AddItem(first)
	list.AddItem(second)

	found := list.FindItem("eggs")
	require.NotNil(t, found)
	assert.Equal(t, first.ItemID, found.ItemID)

	assert.Nil(t, list.FindItem("Butter"))
}

func TestRemoveItemRemovesAllMatches(t *testing.T) {
	list := mustList(t)
	list.AddItem(mustItem(t, "Eggs"))
	list.AddItem(mustItem(t, "Milk"))
	list.AddItem(mustItem(t, "EGGS"))

	assert.True(t, list.RemoveItem("eggs"))
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Milk", list.Items[0].Name)

	assert.False(t, list.RemoveItem("eggs"))
}

func TestRemoveItemNoMatchDoesNotTouch(t *testing.T) {
	list := mustList(t)
	list.AddItem(mustItem(t, "Milk"))
	stamp := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	list.UpdatedAt = stamp

	assert.False(t, list.RemoveItem("Butter"))
	assert.Equal(t, stamp, list.UpdatedAt)
}

func TestPartitions(t *testing.T) {
	list := mustList(t)
	a := mustItem(t, "A")
	b := mustItem(t, "B")
	c := mustItem(t, "C")
	list.AddItem(a)
	list.AddItem(b)
	list.AddItem(c)
	b.MarkChecked()

	unchecked := list.UncheckedItems()
	require.Len(t, unchecked, 2)
	assert.Equal(t, "A", unchecked[0].Name)
	assert.Equal(t, "C", unchecked[1].Name)

	checked := list.CheckedItems()
	require.Len(t, checked, 1)
	assert.Equal(t, "B", checked[0].Name)
}

func TestClearCheckedItems(t *testing.T) {
	list := mustList(t)
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		list.AddItem(mustItem(t, name))
	}
	for _, name := range []string{"A", "C", "E"} {
		list.FindItem(name).MarkChecked()
	}

	assert.Equal(t, 3, list.ClearCheckedItems())
	require.Len(t, list.Items, 2)
	assert.Equal(t, "B", list.Items[0].Name)
	assert.Equal(t, "D", list.Items[1].Name)

	// Nothing checked left; timestamp must not move.
	stamp := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	list.UpdatedAt = stamp
	assert.Equal(t, 0, list.ClearCheckedItems())
	assert.Equal(t, stamp, list.UpdatedAt)
}

func TestClearAllItems(t *testing.T) {
	list := mustList(t)
	list.AddItem(mustItem(t, "A"))
	list.AddItem(mustItem(t, "B"))

	assert.Equal(t, 2, list.ClearAllItems())
	assert.Empty(t, list.Items)
	assert.Equal(t, 0, list.ClearAllItems())
}

func TestCountMatching(t *testing.T) {
	list := mustList(t)
	list.AddItem(mustItem(t, "Eggs"))
	list.AddItem(mustItem(t, "EGGS"))
	list.AddItem(mustItem(t, "Milk"))

	assert.Equal(t, 2, list.CountMatching(" eggs "))
	assert.Equal(t, 0, list.CountMatching("Butter"))
}
