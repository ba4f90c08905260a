// Package cart provides the pending-order collaborator the detail
// panel hands dishes to. Order checkout lives server-side; this only
// accumulates the pending items for the current run.
package cart

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"foodexplorer/internal/domain"
	"foodexplorer/internal/logger"
)

// Compile-time interface check.
var _ domain.Cart = (*Memory)(nil)

// Item is one pending order line.
type Item struct {
	Dish     *domain.Dish
	Quantity int
	ImageURL string
}

// Memory accumulates pending order items in memory. Safe for
// concurrent access; the UI status bar reads it from another goroutine.
type Memory struct {
	mu    sync.RWMutex
	items []Item
	log   *logger.Logger
}

// NewMemory creates an empty cart.
func NewMemory(log *logger.Logger) *Memory {
	return &Memory{log: log}
}

// Add records a dish with the chosen quantity and its resolved image URL.
func (c *Memory) Add(ctx context.Context, dish *domain.Dish, quantity int, imageURL string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	copied := *dish
	c.items = append(c.items, Item{Dish: &copied, Quantity: quantity, ImageURL: imageURL})
	c.log.Info("cart: added %dx %q", quantity, dish.Title)
	return nil
}

// Items returns a copy of the pending order lines.
func (c *Memory) Items() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Count returns the total number of units across all lines.
func (c *Memory) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// Total sums price*quantity over the pending lines. Prices arrive as
// numeric strings from the API; unparsable ones are skipped.
func (c *Memory) Total() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var total float64
	for _, item := range c.items {
		price, err := strconv.ParseFloat(strings.ReplaceAll(item.Dish.Price, ",", "."), 64)
		if err != nil {
			c.log.Warn("cart: unparsable price %q for %q", item.Dish.Price, item.Dish.Title)
			continue
		}
		total += price * float64(item.Quantity)
	}
	return total
}
