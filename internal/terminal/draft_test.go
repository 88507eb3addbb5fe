package terminal_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"orderlist/internal/terminal"
)

type resolverFunc func(ctx context.Context, barcode string) (*terminal.Item, error)

func (f resolverFunc) ResolveItem(ctx context.Context, barcode string) (*terminal.Item, error) {
	return f(ctx, barcode)
}

func fixedCatalog(items map[string]terminal.Item) resolverFunc {
	return func(ctx context.Context, barcode string) (*terminal.Item, error) {
		item, ok := items[barcode]
		if !ok {
			return nil, terminal.ErrNotFound
		}
		return &item, nil
	}
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestDraft_CommitComputesTotalAndVAT(t *testing.T) {
	d := terminal.NewDraft(fixedCatalog(map[string]terminal.Item{
		"123": {Name: "Soap", Price: mustDecimal(t, "10.00")},
	}))

	if err := d.StageBarcode(context.Background(), "123"); err != nil {
		t.Fatalf("StageBarcode: %v", err)
	}
	if err := d.SetPendingQuantity(3); err != nil {
		t.Fatalf("SetPendingQuantity: %v", err)
	}

	item, err := d.CommitPending()
	if err != nil {
		t.Fatalf("CommitPending: %v", err)
	}

	if !item.Total.Equal(mustDecimal(t, "30.00")) {
		t.Errorf("total = %s, want 30.00", item.Total)
	}
	if !item.VAT.Equal(mustDecimal(t, "4.50")) {
		t.Errorf("vat = %s, want 4.50", item.VAT)
	}
	if item.Name != "Soap" {
		t.Errorf("name = %q, want Soap", item.Name)
	}
}

func TestDraft_DuplicateBarcodesAppendSeparateRows(t *testing.T) {
	d := terminal.NewDraft(fixedCatalog(map[string]terminal.Item{
		"123": {Name: "Soap", Price: mustDecimal(t, "2.50")},
	}))

	for i := 0; i < 2; i++ {
		if err := d.StageBarcode(context.Background(), "123"); err != nil {
			t.Fatalf("StageBarcode: %v", err)
		}
		if _, err := d.CommitPending(); err != nil {
			t.Fatalf("CommitPending: %v", err)
		}
	}

	items := d.Items()
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2 independent rows", len(items))
	}
	if items[0].Quantity != 1 || items[1].Quantity != 1 {
		t.Errorf("quantities = %d, %d; rows must not be merged", items[0].Quantity, items[1].Quantity)
	}
}

func TestDraft_EditsRecomputeEagerly(t *testing.T) {
	tests := []struct {
		name      string
		edit      func(d *terminal.Draft) error
		wantQty   int
		wantPrice string
		wantTotal string
		wantVAT   string
	}{
		{
			name:      "edit quantity",
			edit:      func(d *terminal.Draft) error { return d.EditQuantity(0, "4") },
			wantQty:   4,
			wantPrice: "10.00",
			wantTotal: "40.00",
			wantVAT:   "6.00",
		},
		{
			name:      "edit price",
			edit:      func(d *terminal.Draft) error { return d.EditPrice(0, "7.99") },
			wantQty:   1,
			wantPrice: "7.99",
			wantTotal: "7.99",
			wantVAT:   "1.20",
		},
		{
			name: "edit both",
			edit: func(d *terminal.Draft) error {
				if err := d.EditQuantity(0, "3"); err != nil {
					return err
				}
				return d.EditPrice(0, "0.10")
			},
			wantQty:   3,
			wantPrice: "0.10",
			wantTotal: "0.30",
			wantVAT:   "0.05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := terminal.NewDraft(fixedCatalog(map[string]terminal.Item{
				"123": {Name: "Soap", Price: mustDecimal(t, "10.00")},
			}))
			if err := d.StageBarcode(context.Background(), "123"); err != nil {
				t.Fatalf("StageBarcode: %v", err)
			}
			if _, err := d.CommitPending(); err != nil {
				t.Fatalf("CommitPending: %v", err)
			}

			if err := tt.edit(d); err != nil {
				t.Fatalf("edit: %v", err)
			}

			item := d.Items()[0]
			if item.Quantity != tt.wantQty {
				t.Errorf("quantity = %d, want %d", item.Quantity, tt.wantQty)
			}
			if !item.UnitPrice.Equal(mustDecimal(t, tt.wantPrice)) {
				t.Errorf("price = %s, want %s", item.UnitPrice, tt.wantPrice)
			}
			if !item.Total.Equal(mustDecimal(t, tt.wantTotal)) {
				t.Errorf("total = %s, want %s", item.Total, tt.wantTotal)
			}
			if !item.VAT.Equal(mustDecimal(t, tt.wantVAT)) {
				t.Errorf("vat = %s, want %s", item.VAT, tt.wantVAT)
			}
		})
	}
}

func TestDraft_MalformedEditsRejectedAndValueRetained(t *testing.T) {
	tests := []struct {
		name    string
		edit    func(d *terminal.Draft) error
		wantErr error
	}{
		{"quantity not a number", func(d *terminal.Draft) error { return d.EditQuantity(0, "abc") }, terminal.ErrInvalidQuantity},
		{"quantity empty", func(d *terminal.Draft) error { return d.EditQuantity(0, "") }, terminal.ErrInvalidQuantity},
		{"quantity zero", func(d *terminal.Draft) error { return d.EditQuantity(0, "0") }, terminal.ErrInvalidQuantity},
		{"quantity negative", func(d *terminal.Draft) error { return d.EditQuantity(0, "-2") }, terminal.ErrInvalidQuantity},
		{"price not a number", func(d *terminal.Draft) error { return d.EditPrice(0, "oops") }, terminal.ErrInvalidPrice},
		{"price negative", func(d *terminal.Draft) error { return d.EditPrice(0, "-1.50") }, terminal.ErrInvalidPrice},
		{"index out of range", func(d *terminal.Draft) error { return d.EditQuantity(5, "2") }, terminal.ErrNoSuchItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := terminal.NewDraft(fixedCatalog(map[string]terminal.Item{
				"123": {Name: "Soap", Price: mustDecimal(t, "10.00")},
			}))
			if err := d.StageBarcode(context.Background(), "123"); err != nil {
				t.Fatalf("StageBarcode: %v", err)
			}
			if err := d.SetPendingQuantity(2); err != nil {
				t.Fatalf("SetPendingQuantity: %v", err)
			}
			if _, err := d.CommitPending(); err != nil {
				t.Fatalf("CommitPending: %v", err)
			}
			before := d.Items()[0]

			err := tt.edit(d)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("edit error = %v, want %v", err, tt.wantErr)
			}

			after := d.Items()[0]
			if after.Quantity != before.Quantity || !after.UnitPrice.Equal(before.UnitPrice) ||
				!after.Total.Equal(before.Total) || !after.VAT.Equal(before.VAT) {
				t.Errorf("line item changed after rejected edit: %+v -> %+v", before, after)
			}
		})
	}
}

func TestDraft_CommitWithoutBarcodeIsRejected(t *testing.T) {
	d := terminal.NewDraft(fixedCatalog(nil))

	_, err := d.CommitPending()
	if !errors.Is(err, terminal.ErrEmptyBarcode) {
		t.Fatalf("CommitPending error = %v, want ErrEmptyBarcode", err)
	}
	if d.Len() != 0 {
		t.Errorf("items appended on empty commit")
	}
}

func TestDraft_RefocusFiresOnSuccessAndFailure(t *testing.T) {
	d := terminal.NewDraft(fixedCatalog(map[string]terminal.Item{
		"123": {Name: "Soap", Price: mustDecimal(t, "1.00")},
	}))

	refocused := 0
	d.OnRefocus = func() { refocused++ }

	if _, err := d.CommitPending(); !errors.Is(err, terminal.ErrEmptyBarcode) {
		t.Fatalf("expected ErrEmptyBarcode, got %v", err)
	}
	if err := d.StageBarcode(context.Background(), "123"); err != nil {
		t.Fatalf("StageBarcode: %v", err)
	}
	if _, err := d.CommitPending(); err != nil {
		t.Fatalf("CommitPending: %v", err)
	}

	if refocused != 2 {
		t.Errorf("refocus fired %d times, want 2 (failure and success)", refocused)
	}
}

func TestDraft_NotFoundRecordsFieldErrorAndLeavesItems(t *testing.T) {
	d := terminal.NewDraft(fixedCatalog(map[string]terminal.Item{
		"123": {Name: "Soap", Price: mustDecimal(t, "1.00")},
	}))
	if err := d.StageBarcode(context.Background(), "123"); err != nil {
		t.Fatalf("StageBarcode: %v", err)
	}
	if _, err := d.CommitPending(); err != nil {
		t.Fatalf("CommitPending: %v", err)
	}

	err := d.StageBarcode(context.Background(), "999")
	if !errors.Is(err, terminal.ErrNotFound) {
		t.Fatalf("StageBarcode error = %v, want ErrNotFound", err)
	}
	if errors.Is(err, terminal.ErrLookupFailed) {
		t.Errorf("NotFound must be distinct from LookupFailed")
	}
	if !errors.Is(d.FieldError(), terminal.ErrNotFound) {
		t.Errorf("FieldError = %v, want ErrNotFound", d.FieldError())
	}
	if d.Len() != 1 {
		t.Errorf("line items changed by a failed lookup")
	}

	pending := d.Pending()
	if pending.Name != "" || pending.Price != nil {
		t.Errorf("resolved name/price not cleared on failed lookup: %+v", pending)
	}
	if pending.Barcode != "999" {
		t.Errorf("staged barcode = %q; typing must not be blocked", pending.Barcode)
	}
}

func TestDraft_LookupFailureRecordsTransportError(t *testing.T) {
	failure := errors.New("connection refused")
	d := terminal.NewDraft(resolverFunc(func(ctx context.Context, barcode string) (*terminal.Item, error) {
		return nil, errors.Join(terminal.ErrLookupFailed, failure)
	}))

	err := d.StageBarcode(context.Background(), "123")
	if !errors.Is(err, terminal.ErrLookupFailed) {
		t.Fatalf("StageBarcode error = %v, want ErrLookupFailed", err)
	}
}

func TestDraft_StaleResolutionIsDropped(t *testing.T) {
	oldStarted := make(chan struct{})
	oldRelease := make(chan struct{})

	d := terminal.NewDraft(resolverFunc(func(ctx context.Context, barcode string) (*terminal.Item, error) {
		if barcode == "old" {
			close(oldStarted)
			<-oldRelease
			item := terminal.Item{Name: "Old Product", Price: mustDecimal(t, "1.00")}
			return &item, nil
		}
		item := terminal.Item{Name: "New Product", Price: mustDecimal(t, "2.00")}
		return &item, nil
	}))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = d.StageBarcode(context.Background(), "old")
	}()

	<-oldStarted
	if err := d.StageBarcode(context.Background(), "new"); err != nil {
		t.Fatalf("StageBarcode(new): %v", err)
	}
	close(oldRelease)
	wg.Wait()

	pending := d.Pending()
	if pending.Barcode != "new" || pending.Name != "New Product" {
		t.Errorf("stale resolution won: staged %q name %q, want new/New Product", pending.Barcode, pending.Name)
	}
}

func TestDraft_ClearingBarcodeDropsInFlightResolution(t *testing.T) {
	oldStarted := make(chan struct{})
	oldRelease := make(chan struct{})

	d := terminal.NewDraft(resolverFunc(func(ctx context.Context, barcode string) (*terminal.Item, error) {
		close(oldStarted)
		<-oldRelease
		item := terminal.Item{Name: "Old Product", Price: mustDecimal(t, "1.00")}
		return &item, nil
	}))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = d.StageBarcode(context.Background(), "old")
	}()

	// Clear the field while the first lookup is still in flight.
	<-oldStarted
	if err := d.StageBarcode(context.Background(), ""); err != nil {
		t.Fatalf("StageBarcode(empty): %v", err)
	}
	close(oldRelease)
	wg.Wait()

	pending := d.Pending()
	if pending.Barcode != "" || pending.Name != "" || pending.Price != nil {
		t.Errorf("stale resolution landed on a cleared field: %+v", pending)
	}
}

func TestDraft_CommitResetsPendingEntry(t *testing.T) {
	d := terminal.NewDraft(fixedCatalog(map[string]terminal.Item{
		"123": {Name: "Soap", Price: mustDecimal(t, "10.00")},
	}))
	if err := d.StageBarcode(context.Background(), "123"); err != nil {
		t.Fatalf("StageBarcode: %v", err)
	}
	if err := d.SetPendingQuantity(5); err != nil {
		t.Fatalf("SetPendingQuantity: %v", err)
	}
	if _, err := d.CommitPending(); err != nil {
		t.Fatalf("CommitPending: %v", err)
	}

	pending := d.Pending()
	if pending.Barcode != "" || pending.Name != "" || pending.Price != nil || pending.Quantity != 1 {
		t.Errorf("pending not reset after commit: %+v", pending)
	}
}

func TestDraft_PriceOverrideWinsOverCatalogPrice(t *testing.T) {
	d := terminal.NewDraft(fixedCatalog(map[string]terminal.Item{
		"123": {Name: "Soap", Price: mustDecimal(t, "10.00")},
	}))
	if err := d.StageBarcode(context.Background(), "123"); err != nil {
		t.Fatalf("StageBarcode: %v", err)
	}
	if err := d.SetPendingPrice(mustDecimal(t, "8.00")); err != nil {
		t.Fatalf("SetPendingPrice: %v", err)
	}

	item, err := d.CommitPending()
	if err != nil {
		t.Fatalf("CommitPending: %v", err)
	}
	if !item.UnitPrice.Equal(mustDecimal(t, "8.00")) {
		t.Errorf("price = %s, want the 8.00 override", item.UnitPrice)
	}
}

func TestDraft_RemoveItem(t *testing.T) {
	d := terminal.NewDraft(fixedCatalog(map[string]terminal.Item{
		"1": {Name: "A", Price: mustDecimal(t, "1.00")},
		"2": {Name: "B", Price: mustDecimal(t, "2.00")},
	}))
	for _, code := range []string{"1", "2"} {
		if err := d.StageBarcode(context.Background(), code); err != nil {
			t.Fatalf("StageBarcode: %v", err)
		}
		if _, err := d.CommitPending(); err != nil {
			t.Fatalf("CommitPending: %v", err)
		}
	}

	if err := d.RemoveItem(0); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	items := d.Items()
	if len(items) != 1 || items[0].Name != "B" {
		t.Errorf("remaining items = %+v, want just B", items)
	}

	if err := d.RemoveItem(7); !errors.Is(err, terminal.ErrNoSuchItem) {
		t.Errorf("RemoveItem(7) = %v, want ErrNoSuchItem", err)
	}
}
