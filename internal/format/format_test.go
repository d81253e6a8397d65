package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/CartoboT/internal/models"
)

func newItem(t *testing.T, name string, qty float64, unit, category, notes string) *models.ShoppingItem {
	t.Helper()
	item, err := models.NewShoppingItem(name, qty, unit, category, notes)
	require.NoError(t, err)
	return item
}

func TestListEmpty(t *testing.T) {
	list, err := models.NewShoppingList("user-1")
	require.NoError(t, err)
	assert.Equal(t, EmptyList, List(list))
}

func TestListSections(t *testing.T) {
	list, err := models.NewShoppingList("user-1")
	require.NoError(t, err)

	list.AddItem(newItem(t, "Milk", 2, "l", "dairy", "lactose free"))
	list.AddItem(newItem(t, "Bread", 1, "", "", ""))
	eggs := newItem(t, "Eggs", 12, "pieces", "", "")
	list.AddItem(eggs)
	eggs.MarkChecked()

	out := List(list)

	assert.Contains(t, out, "*My Shopping List*")
	assert.Contains(t, out, "*Items to Buy:*")
	assert.Contains(t, out, "• Milk (2 l) [dairy] - lactose free")
	assert.Contains(t, out, "• Bread (1)")
	assert.Contains(t, out, "*Purchased:*")
	assert.Contains(t, out, "✓ Eggs (12 pieces)")
	assert.Contains(t, out, "*Total items:* 2 to buy, 1 purchased")
}

func TestListOnlyCheckedItems(t *testing.T) {
	list, err := models.NewShoppingList("user-1")
	require.NoError(t, err)
	item := newItem(t, "Milk", 1, "", "", "")
	list.AddItem(item)
	item.MarkChecked()

	out := List(list)
	assert.NotContains(t, out, "*Items to Buy:*")
	assert.Contains(t, out, "*Total items:* 0 to buy, 1 purchased")
}

func TestQuantityUnit(t *testing.T) {
	assert.Equal(t, "2 l", QuantityUnit(newItem(t, "Milk", 2, "l", "", "")))
	assert.Equal(t, "3", QuantityUnit(newItem(t, "Apples", 3, "", "", "")))
	assert.Equal(t, "0.5 kg", QuantityUnit(newItem(t, "Flour", 0.5, "kg", "", "")))
}
