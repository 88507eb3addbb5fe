package terminal

import (
	"time"

	"github.com/shopspring/decimal"
	"orderlist/pkg/printer"
)

// RenderReceipt renders a submitted order as an ESC/POS receipt: customer
// header, line items with their totals, and the order total with VAT.
func RenderReceipt(info CustomerInfo, items []LineItem, filename string, width int) []byte {
	r := printer.NewReceipt(width)

	r.Center().Bold(true).Title("ORDER").Bold(false).Left().Feed(1)

	if info.CustomerName != "" {
		r.Pair("Customer", info.CustomerName)
	}
	if info.CustomerPhone != "" {
		r.Pair("Phone", info.CustomerPhone)
	}
	r.Pair("Created by", info.CreatedBy)
	r.Pair("Date", time.Now().Format("2006-01-02 15:04"))
	r.Rule()

	total := decimal.Zero
	vat := decimal.Zero
	for _, item := range items {
		r.Item(item.Quantity, item.Name, item.Total.StringFixed(2))
		total = total.Add(item.Total)
		vat = vat.Add(item.VAT)
	}

	r.Rule()
	r.Bold(true).Pair("Total", total.StringFixed(2)).Bold(false)
	r.Pair("VAT (15%)", vat.StringFixed(2))

	if filename != "" {
		r.Feed(1).Line(filename)
	}

	r.Feed(3).Cut()
	return r.Bytes()
}
