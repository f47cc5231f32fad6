// Package item defines inventory items with per-branch stock pools.
package item

import (
	"github.com/xraph/khata/id"
	"github.com/xraph/khata/types"
)

// Item is an inventory product. Stock is tracked per branch; sales draw
// down the pool of the branch the sale happened at, and transfers move
// quantity between pools.
type Item struct {
	types.Entity
	ID             id.ItemID              `json:"id"`
	Name           string                 `json:"name"`
	Category       string                 `json:"category"`
	WholesalePrice types.Money            `json:"wholesale_price"`
	RetailPrice    types.Money            `json:"retail_price"`
	Stock          map[types.Branch]int64 `json:"stock"` // Per-branch quantity, each >= 0
	Images         []string               `json:"images,omitempty"`
}

// StockAt returns the quantity held at the given branch.
func (i *Item) StockAt(branch types.Branch) int64 {
	return i.Stock[branch]
}

// TotalStock returns the quantity held across all branches.
func (i *Item) TotalStock() int64 {
	var total int64
	for _, qty := range i.Stock {
		total += qty
	}

	return total
}

// Deduct reduces the given branch's pool by qty, floored at zero, and
// returns the quantity actually removed. Oversell at commit time clamps
// rather than failing: the cart already validated availability, but
// concurrent carts can still race past it.
func (i *Item) Deduct(branch types.Branch, qty int64) int64 {
	if qty <= 0 {
		return 0
	}

	if i.Stock == nil {
		i.Stock = make(map[types.Branch]int64)
	}

	have := i.Stock[branch]
	if qty > have {
		qty = have
	}

	i.Stock[branch] = have - qty

	return qty
}

// Restock adds qty back to the given branch's pool.
func (i *Item) Restock(branch types.Branch, qty int64) {
	if qty <= 0 {
		return
	}

	if i.Stock == nil {
		i.Stock = make(map[types.Branch]int64)
	}

	i.Stock[branch] += qty
}
