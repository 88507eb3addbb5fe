package terminal

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

var vatRate = decimal.NewFromFloat(0.15)

// LineItem is one priced, quantified product entry in the draft. Total and
// VAT are recomputed eagerly on every mutation of quantity or price:
// total = price × quantity, vat = round(total × 0.15, 2).
type LineItem struct {
	Barcode   string          `json:"barcode"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
	VAT       decimal.Decimal `json:"vat"`
}

func (li *LineItem) recompute() {
	li.Total = li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
	li.VAT = li.Total.Mul(vatRate).Round(2)
}

// PendingEntry is the staging state for the next line item: it exists
// between a barcode being entered or scanned and the commit action.
type PendingEntry struct {
	Barcode  string
	Name     string
	Quantity int
	Price    *decimal.Decimal // catalog prefill or operator override; nil when unset
}

// ItemResolver resolves a barcode against the catalog
type ItemResolver interface {
	ResolveItem(ctx context.Context, barcode string) (*Item, error)
}

// Draft is the in-progress, unsaved order being assembled. It exclusively
// owns its line items and pending entry; no background task mutates them.
type Draft struct {
	mu       sync.Mutex
	resolver ItemResolver
	pending  PendingEntry
	items    []LineItem
	fieldErr error
	gen      uint64

	// OnRefocus, when set, fires after every commit attempt, success or
	// failure, so rapid sequential scanning returns to the barcode field.
	OnRefocus func()
}

// NewDraft creates an empty draft backed by the given resolver
func NewDraft(resolver ItemResolver) *Draft {
	return &Draft{
		resolver: resolver,
		pending:  PendingEntry{Quantity: 1},
	}
}

// StageBarcode stages a barcode and resolves it against the catalog. The
// previously resolved name and price are cleared first. If another barcode
// is staged while this resolution is still in flight, the stale result is
// dropped: the last request issued wins.
func (d *Draft) StageBarcode(ctx context.Context, barcode string) error {
	d.mu.Lock()
	d.pending.Barcode = barcode
	d.pending.Name = ""
	d.pending.Price = nil
	d.fieldErr = nil

	// Every staging, including clearing the field, invalidates any lookup
	// still in flight.
	d.gen++
	issued := d.gen

	if strings.TrimSpace(barcode) == "" {
		d.mu.Unlock()
		return nil
	}
	d.mu.Unlock()

	item, err := d.resolver.ResolveItem(ctx, barcode)

	d.mu.Lock()
	defer d.mu.Unlock()

	if issued != d.gen {
		// A newer barcode was staged while this lookup was in flight.
		return nil
	}

	if err != nil {
		d.fieldErr = err
		return err
	}

	price := item.Price
	d.pending.Name = item.Name
	d.pending.Price = &price
	d.pending.Quantity = 1
	return nil
}

// SetPendingQuantity sets the staged quantity; it must be at least 1
func (d *Draft) SetPendingQuantity(quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending.Quantity = quantity
	return nil
}

// SetPendingPrice overrides the staged price; the catalog prefill is only a
// default and stays operator-editable.
func (d *Draft) SetPendingPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrInvalidPrice
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending.Price = &price
	return nil
}

// Pending returns a copy of the staging state
func (d *Draft) Pending() PendingEntry {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// FieldError returns the error recorded for the barcode field, if any
func (d *Draft) FieldError() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fieldErr
}

// CommitPending appends the staged entry as a new line item. Committing the
// same barcode twice appends two independent rows; nothing is merged. The
// pending entry resets afterwards and the refocus hook fires whether the
// commit succeeded or not.
func (d *Draft) CommitPending() (LineItem, error) {
	d.mu.Lock()

	refocus := d.OnRefocus
	defer func() {
		if refocus != nil {
			refocus()
		}
	}()

	if strings.TrimSpace(d.pending.Barcode) == "" {
		d.mu.Unlock()
		return LineItem{}, ErrEmptyBarcode
	}

	price := decimal.Zero
	if d.pending.Price != nil {
		price = *d.pending.Price
	}
	quantity := d.pending.Quantity
	if quantity < 1 {
		quantity = 1
	}

	item := LineItem{
		Barcode:   d.pending.Barcode,
		Name:      d.pending.Name,
		Quantity:  quantity,
		UnitPrice: price,
	}
	item.recompute()

	d.items = append(d.items, item)
	d.pending = PendingEntry{Quantity: 1}
	d.fieldErr = nil
	d.mu.Unlock()

	return item, nil
}

// EditQuantity replaces a line item's quantity from raw operator input.
// Input that does not parse to an integer of at least 1 is rejected and the
// previous value retained.
func (d *Draft) EditQuantity(index int, input string) error {
	quantity, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || quantity < 1 {
		return ErrInvalidQuantity
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if index < 0 || index >= len(d.items) {
		return ErrNoSuchItem
	}
	d.items[index].Quantity = quantity
	d.items[index].recompute()
	return nil
}

// EditPrice replaces a line item's unit price from raw operator input.
// Input that does not parse to a non-negative decimal is rejected and the
// previous value retained.
func (d *Draft) EditPrice(index int, input string) error {
	price, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil || price.IsNegative() {
		return ErrInvalidPrice
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if index < 0 || index >= len(d.items) {
		return ErrNoSuchItem
	}
	d.items[index].UnitPrice = price
	d.items[index].recompute()
	return nil
}

// RemoveItem deletes one line item; no confirmation is required
func (d *Draft) RemoveItem(index int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if index < 0 || index >= len(d.items) {
		return ErrNoSuchItem
	}
	d.items = append(d.items[:index], d.items[index+1:]...)
	return nil
}

// Items returns a copy of the current line items
func (d *Draft) Items() []LineItem {
	d.mu.Lock()
	defer d.mu.Unlock()
	items := make([]LineItem, len(d.items))
	copy(items, d.items)
	return items
}

// Len returns the number of line items
func (d *Draft) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.items)
}

// ClearItems empties the line item collection, leaving the pending entry
// untouched. Called after a successful submission.
func (d *Draft) ClearItems() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.items = nil
}
