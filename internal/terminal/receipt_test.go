package terminal_test

import (
	"bytes"
	"testing"

	"orderlist/internal/terminal"
)

func TestRenderReceipt(t *testing.T) {
	items := []terminal.LineItem{
		{
			Barcode:   "123",
			Name:      "Pen",
			Quantity:  3,
			UnitPrice: mustDecimal(t, "10.00"),
			Total:     mustDecimal(t, "30.00"),
			VAT:       mustDecimal(t, "4.50"),
		},
		{
			Barcode:   "456",
			Name:      "Notebook",
			Quantity:  1,
			UnitPrice: mustDecimal(t, "3.99"),
			Total:     mustDecimal(t, "3.99"),
			VAT:       mustDecimal(t, "0.60"),
		},
	}

	data := terminal.RenderReceipt(terminal.CustomerInfo{
		CustomerName:  "Jane",
		CustomerPhone: "0700000000",
		CreatedBy:     "Bob",
	}, items, "order.xlsx", 48)

	for _, want := range []string{
		"ORDER", "Jane", "0700000000", "Bob",
		"3x Pen", "30.00", "1x Notebook", "3.99",
		"33.99", // order total
		"5.10",  // order vat
		"order.xlsx",
	} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("receipt missing %q", want)
		}
	}
}

func TestRenderReceipt_OmitsEmptyCustomerFields(t *testing.T) {
	data := terminal.RenderReceipt(terminal.CustomerInfo{CreatedBy: "Bob"}, nil, "", 32)

	if bytes.Contains(data, []byte("Customer")) {
		t.Errorf("receipt shows an empty customer field")
	}
	if !bytes.Contains(data, []byte("Created by")) {
		t.Errorf("receipt missing the creator line")
	}
}
