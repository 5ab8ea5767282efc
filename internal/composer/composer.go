// Package composer builds a draft order from catalog selections before it
// is handed to the order store.
package composer

import (
	"fmt"
	"strings"

	"github.com/Larafmp/acai-mae-e-filha/internal/domain"
	"github.com/shopspring/decimal"
)

// Composer holds the lines of one order being composed. It is not safe for
// concurrent use.
type Composer struct {
	catalog map[string]domain.MenuItem
	lines   []domain.OrderLine
}

// New snapshots catalog; later catalog edits do not affect the composer.
func New(catalog []domain.MenuItem) *Composer {
	snapshot := make(map[string]domain.MenuItem, len(catalog))
	for _, item := range catalog {
		snapshot[item.ID] = item
	}

	return &Composer{catalog: snapshot}
}

// AddLine adds one unit of item. A second add of the same item increments
// the existing line instead of appending a new one.
func (c *Composer) AddLine(item domain.MenuItem) {
	if i := c.indexOf(item.ID); i >= 0 {
		c.lines[i].SetQuantity(c.lines[i].Quantity + 1)
		return
	}
	c.lines = append(c.lines, domain.NewOrderLine(item))
}

// AddByID adds one unit of the catalog item with id. Only available items
// can be ordered.
func (c *Composer) AddByID(id string) error {
	item, ok := c.catalog[id]
	if !ok {
		return fmt.Errorf("menu item %s: %w", id, domain.ErrNotFound)
	}
	if !item.IsAvailable() {
		return fmt.Errorf("menu item %s: %w", id, domain.ErrItemUnavailable)
	}

	c.AddLine(item)
	return nil
}

// ChangeQuantity adds delta to the line for menuItemID. A line whose
// quantity drops to zero or below is removed.
func (c *Composer) ChangeQuantity(menuItemID string, delta int) error {
	i := c.indexOf(menuItemID)
	if i < 0 {
		return fmt.Errorf("order line %s: %w", menuItemID, domain.ErrNotFound)
	}

	q := c.lines[i].Quantity + delta
	if q <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return nil
	}

	c.lines[i].SetQuantity(q)
	return nil
}

func (c *Composer) Lines() []domain.OrderLine {
	return append([]domain.OrderLine(nil), c.lines...)
}

func (c *Composer) Len() int {
	return len(c.lines)
}

func (c *Composer) Total() decimal.Decimal {
	return domain.SumLines(c.lines)
}

func (c *Composer) ToOrderDraft(tableNumber, notes string) domain.OrderDraft {
	return domain.OrderDraft{
		Items:           c.Lines(),
		TotalOrderPrice: c.Total(),
		TableNumber:     strings.TrimSpace(tableNumber),
		Notes:           strings.TrimSpace(notes),
	}
}

func (c *Composer) indexOf(menuItemID string) int {
	for i, l := range c.lines {
		if l.MenuItemID == menuItemID {
			return i
		}
	}
	return -1
}
