package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/abaleemmo/food-festival-express-checkout/pkg/db/models"
)

// Line is one cart entry: a menu item snapshot plus the quantity ordered.
// The snapshot is taken at add time so a later admin price edit does not
// silently change what the shopper already sees in the cart.
type Line struct {
	Item     models.FoodItem `json:"item"`
	Quantity int             `json:"quantity"`
}

// Total returns the extended price for this line.
func (l Line) Total() decimal.Decimal {
	return l.Item.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds the order lines for one kiosk session. Lines keep insertion
// order; adding an item already present bumps its quantity in place. Cart is
// not safe for concurrent use, callers serialize access per session.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add puts one more unit of the item in the cart. An item already present
// has its quantity incremented; a new item is appended at the end.
func (c *Cart) Add(item models.FoodItem) {
	for i := range c.lines {
		if c.lines[i].Item.ID == item.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, Line{Item: item, Quantity: 1})
}

// SetQuantity sets the absolute quantity for the given item. A quantity of
// zero or less removes the line. An item not in the cart is left alone.
func (c *Cart) SetQuantity(itemID uuid.UUID, quantity int) {
	for i := range c.lines {
		if c.lines[i].Item.ID != itemID {
			continue
		}
		if quantity <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
		c.lines[i].Quantity = quantity
		return
	}
}

// Remove drops the line for the given item if present.
func (c *Cart) Remove(itemID uuid.UUID) {
	c.SetQuantity(itemID, 0)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// ItemCount returns the sum of quantities across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Subtotal returns the sum of line totals. It is recomputed from the lines
// on every call rather than cached.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Total())
	}
	return total
}
