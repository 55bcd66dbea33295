package models

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/fuzzyshak/narah/internal/utils"
)

// CartItem is a pending, unconfirmed booking selection. It has no owner until
// checkout binds it to the authenticated user.
type CartItem struct {
	ID        string `json:"id"`
	VenueID   string `json:"venue_id"`
	VenueName string `json:"venue_name"`
	PassName  string `json:"pass_name"`
	PassPrice string `json:"pass_price"` // display form, "BD 11.000"
	Date      string `json:"date"`       // YYYY-MM-DD
	Time      string `json:"time"`       // HH:MM
	Location  string `json:"location"`
}

// Cart holds the ordered list of pending bookings for the current session.
// Display order is insertion order.
type Cart struct {
	Items []CartItem `json:"items"`
}

// AddItem appends an item with a freshly generated identifier. Two identical
// bookings may coexist; there is no de-duplication.
func (c *Cart) AddItem(item CartItem) CartItem {
	item.ID = uuid.NewString()
	c.Items = append(c.Items, item)
	return item
}

// RemoveItem removes the item with the given id. Removing an id that is not
// present is a no-op, not an error.
func (c *Cart) RemoveItem(id string) {
	for i, item := range c.Items {
		if item.ID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalFils sums the numeric price component of every item.
func (c *Cart) TotalFils() (int64, error) {
	var total int64
	for _, item := range c.Items {
		fils, err := utils.ParseFils(item.PassPrice)
		if err != nil {
			return 0, fmt.Errorf("cart item %s: %w", item.ID, err)
		}
		total += fils
	}
	return total, nil
}

// TotalDisplay formats the cart total as "BD x.xxx".
func (c *Cart) TotalDisplay() (string, error) {
	total, err := c.TotalFils()
	if err != nil {
		return "", err
	}
	return utils.FormatFils(total), nil
}
