package khata

import (
	"context"
	"fmt"

	"github.com/xraph/khata/audit"
	"github.com/xraph/khata/id"
	"github.com/xraph/khata/item"
	"github.com/xraph/khata/types"
)

// ──────────────────────────────────────────────────
// Inventory
// ──────────────────────────────────────────────────

// AddItem adds an inventory item. Missing stock pools start empty;
// negative opening quantities are rejected.
func (e *Engine) AddItem(ctx context.Context, it *item.Item) error {
	if it == nil {
		return ValidationError{Field: "item", Message: "must not be nil"}
	}
	if it.Name == "" {
		return ValidationError{Field: "name", Message: "must not be empty"}
	}
	it.WholesalePrice = e.normalize(it.WholesalePrice)
	it.RetailPrice = e.normalize(it.RetailPrice)
	if it.WholesalePrice.IsNegative() || it.RetailPrice.IsNegative() {
		return ValidationError{Field: "price", Message: "must not be negative"}
	}
	if err := e.checkCurrency("wholesale_price", it.WholesalePrice); err != nil {
		return err
	}
	if err := e.checkCurrency("retail_price", it.RetailPrice); err != nil {
		return err
	}
	for branch, qty := range it.Stock {
		if !branch.IsValid() {
			return ValidationError{Field: "stock", Message: fmt.Sprintf("unknown branch %q", branch)}
		}
		if qty < 0 {
			return ValidationError{Field: "stock", Message: "quantity must not be negative"}
		}
	}

	e.mu.Lock()

	if it.ID.IsNil() {
		it.ID = id.NewItemID()
	}
	it.Entity = types.NewEntity()
	if it.Stock == nil {
		it.Stock = make(map[types.Branch]int64)
	}
	e.store.PutItem(it)

	e.recorder.Record(actorFrom(ctx), audit.Entry{
		Action:   audit.ActionItemAdded,
		Target:   fmt.Sprintf("item %s", it.ID),
		NewValue: fmt.Sprintf("%s, stock %d", it.Name, it.TotalStock()),
		Severity: audit.SeverityLow,
	})

	e.mu.Unlock()

	e.scheduleSync()
	return nil
}

// UpdateItem updates an item's catalog fields and prices. Stock pools
// are moved through sales, deletions, and transfers, not edited here.
func (e *Engine) UpdateItem(ctx context.Context, it *item.Item) error {
	if it == nil {
		return ValidationError{Field: "item", Message: "must not be nil"}
	}
	it.WholesalePrice = e.normalize(it.WholesalePrice)
	it.RetailPrice = e.normalize(it.RetailPrice)
	if it.WholesalePrice.IsNegative() || it.RetailPrice.IsNegative() {
		return ValidationError{Field: "price", Message: "must not be negative"}
	}
	if err := e.checkCurrency("wholesale_price", it.WholesalePrice); err != nil {
		return err
	}
	if err := e.checkCurrency("retail_price", it.RetailPrice); err != nil {
		return err
	}

	e.mu.Lock()

	var old string
	ok := e.store.MutateItem(it.ID, func(cur *item.Item) {
		old = cur.Name
		cur.Name = it.Name
		cur.Category = it.Category
		cur.WholesalePrice = it.WholesalePrice
		cur.RetailPrice = it.RetailPrice
		cur.Images = it.Images
		cur.Touch()
	})
	if !ok {
		e.mu.Unlock()
		return ErrItemNotFound
	}

	e.recorder.Record(actorFrom(ctx), audit.Entry{
		Action:   audit.ActionItemUpdated,
		Target:   fmt.Sprintf("item %s", it.ID),
		OldValue: old,
		NewValue: it.Name,
		Severity: audit.SeverityMedium,
	})

	e.mu.Unlock()

	e.scheduleSync()
	return nil
}

// DeleteItem removes an item from the catalog. Past sale lines keep
// their recorded item id for history.
func (e *Engine) DeleteItem(ctx context.Context, itemID id.ItemID) error {
	e.mu.Lock()

	it, ok := e.store.ItemView(itemID)
	if !ok {
		e.mu.Unlock()
		return ErrItemNotFound
	}

	e.store.DeleteItem(itemID)

	e.recorder.Record(actorFrom(ctx), audit.Entry{
		Action:   audit.ActionItemDeleted,
		Target:   fmt.Sprintf("item %s", itemID),
		OldValue: fmt.Sprintf("%s, stock %d", it.Name, it.TotalStock()),
		Severity: audit.SeverityHigh,
	})

	e.mu.Unlock()

	e.scheduleSync()
	return nil
}

// TransferStock moves qty units of an item from one branch pool to
// another. The source pool must hold the full quantity: a transfer
// never clamps the way a sale does.
func (e *Engine) TransferStock(ctx context.Context, itemID id.ItemID, from, to types.Branch, qty int64) error {
	if qty <= 0 {
		return ValidationError{Field: "quantity", Message: "must be positive"}
	}
	if !from.IsValid() {
		return ValidationError{Field: "from", Message: "unknown branch"}
	}
	if !to.IsValid() {
		return ValidationError{Field: "to", Message: "unknown branch"}
	}
	if from == to {
		return ErrSameBranch
	}

	e.mu.Lock()

	it, ok := e.store.ItemView(itemID)
	if !ok {
		e.mu.Unlock()
		return ErrItemNotFound
	}

	// Re-check under the lock: availability seen by the caller may have
	// been consumed by a concurrent sale.
	if it.StockAt(from) < qty {
		e.mu.Unlock()
		return ErrInsufficientStock
	}

	e.store.MutateItem(itemID, func(cur *item.Item) {
		cur.Stock[from] -= qty
		cur.Restock(to, qty)
		cur.Touch()
	})

	e.recorder.Record(actorFrom(ctx), audit.Entry{
		Action:   audit.ActionStockTransferred,
		Target:   fmt.Sprintf("item %s", itemID),
		OldValue: string(from),
		NewValue: fmt.Sprintf("%d units to %s", qty, to),
		Severity: audit.SeverityMedium,
	})

	view, _ := e.store.ItemView(itemID)

	e.mu.Unlock()

	e.plugins.EmitStockTransferred(ctx, &view, string(from), string(to), qty)
	e.scheduleSync()
	return nil
}
