// Package format renders domain objects into the user-facing strings sent
// back over the bot surface. All functions are pure.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Kerhoff/CartoboT/internal/models"
)

// EmptyList is returned when a list has no items at all.
const EmptyList = "Your shopping list is empty."

// List renders the full shopping list: the list name as a heading, unchecked
// items as a "to buy" section, checked items as a "purchased" section, and a
// trailing totals line. Insertion order is preserved within each section.
// The whole list is always rendered; there is no truncation.
func List(list *models.ShoppingList) string {
	if len(list.Items) == 0 {
		return EmptyList
	}

	unchecked := list.UncheckedItems()
	checked := list.CheckedItems()

	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n\n", list.ListName)

	if len(unchecked) > 0 {
		b.WriteString("*Items to Buy:*\n")
		for _, item := range unchecked {
			fmt.Fprintf(&b, "• %s (%s)%s%s\n",
				item.Name, QuantityUnit(item), categorySuffix(item), notesSuffix(item))
		}
	}

	if len(checked) > 0 {
		b.WriteString("\n*Purchased:*\n")
		for _, item := range checked {
			fmt.Fprintf(&b, "✓ %s (%s)\n", item.Name, QuantityUnit(item))
		}
	}

	fmt.Fprintf(&b, "\n*Total items:* %d to buy, %d purchased", len(unchecked), len(checked))
	return b.String()
}

// QuantityUnit renders "quantity unit" with the trailing separator trimmed
// when the unit is empty, e.g. "2 l" or "3".
func QuantityUnit(item *models.ShoppingItem) string {
	return strings.TrimSpace(Quantity(item.Quantity) + " " + item.Unit)
}

// Quantity renders a quantity without a trailing zero fraction.
func Quantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func categorySuffix(item *models.ShoppingItem) string {
	if item.Category == "" {
		return ""
	}
	return " [" + item.Category + "]"
}

func notesSuffix(item *models.ShoppingItem) string {
	if item.Notes == "" {
		return ""
	}
	return " - " + item.Notes
}
