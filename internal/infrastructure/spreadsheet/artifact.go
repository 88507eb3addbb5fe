package spreadsheet

import (
	"fmt"

	"orderlist/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

const orderSheet = "Order"

// ItemHeaders is the column header row written into every order artifact and
// echoed back by the order-detail endpoint.
var ItemHeaders = []string{"Barcode", "Name", "Quantity", "Price", "Total", "VAT (15%)"}

// BuildOrderWorkbook renders a persisted order into an xlsx workbook:
// customer header rows, a blank separator, the item table, and order totals.
func BuildOrderWorkbook(order *entity.Order) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", orderSheet); err != nil {
		return nil, err
	}

	rows := [][]interface{}{
		{"Customer Name", order.CustomerName},
		{"Phone Number", order.CustomerPhone},
		{"Username", order.Username},
		{"Created By", order.CreatedBy},
		{"Date", order.OrderDate.Format("2006-01-02_15-04-05")},
		{},
	}

	header := make([]interface{}, len(ItemHeaders))
	for i, h := range ItemHeaders {
		header[i] = h
	}
	rows = append(rows, header)

	for _, item := range order.Items {
		rows = append(rows, []interface{}{
			item.Barcode,
			item.Name,
			item.Quantity,
			float64(item.UnitPrice) / 100,
			float64(item.Total) / 100,
			float64(item.VAT) / 100,
		})
	}

	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Order Total", float64(order.Total) / 100},
		[]interface{}{"Order VAT (15%)", float64(order.VAT) / 100},
	)

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(orderSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(orderSheet, "A", "F", 18); err != nil {
		return nil, err
	}

	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	lastCell := fmt.Sprintf("F%d", len(rows))
	if err := f.SetCellStyle(orderSheet, "A1", lastCell, style); err != nil {
		return nil, err
	}

	return f, nil
}
