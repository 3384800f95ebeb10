// Package cart holds a diner session's draft selection: the working set of items
// assembled before submission. Drafts are strictly session-local — they are never
// persisted and no other session can see them — and are cleared on submission.
package cart

import (
	"tableside/internal/merge"
	"tableside/internal/models"
)

// Cart is a draft selection. It is used from a single session goroutine and needs
// no locking of its own.
type Cart struct {
	items []models.OrderItem
}

// Add puts quantity of the menu item into the draft, merging with an existing
// line for the same item. Non-positive quantities are ignored.
func (c *Cart) Add(item models.MenuItem, quantity int) {
	if quantity < 1 {
		return
	}
	c.items = merge.Into(c.items, []models.OrderItem{item.Line(quantity)})
}

// UpdateQuantity sets the draft line for itemID to exactly quantity. A quantity
// of zero or less removes the line.
func (c *Cart) UpdateQuantity(itemID, quantity int) {
	if quantity <= 0 {
		c.Remove(itemID)
		return
	}
	for i := range c.items {
		if c.items[i].ID == itemID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Remove drops the draft line for itemID.
func (c *Cart) Remove(itemID int) {
	rest, _, ok := merge.Take(c.items, itemID)
	if ok {
		c.items = rest
	}
}

// Clear empties the draft.
func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the draft lines.
func (c *Cart) Items() []models.OrderItem {
	return merge.Clone(c.items)
}

// TotalItems is the summed quantity of the draft.
func (c *Cart) TotalItems() int {
	return merge.Quantity(c.items)
}

// TotalPrice is the summed price of the draft.
func (c *Cart) TotalPrice() float64 {
	return merge.Price(c.items)
}

// QuantityOf returns the draft quantity for one item identity.
func (c *Cart) QuantityOf(itemID int) int {
	return merge.QuantityOf(itemID, c.items)
}
