package spreadsheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"orderlist/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

// ParseInventory reads an uploaded inventory workbook into catalog items.
// The active sheet is expected to carry a header row followed by
// barcode | name | price rows. Rows with an empty barcode are skipped and a
// missing or malformed price falls back to 0.
func ParseInventory(r io.Reader) ([]entity.CatalogItem, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	var items []entity.CatalogItem
	for i, row := range rows {
		if i == 0 {
			continue // header row
		}
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		item := entity.CatalogItem{
			Barcode: strings.TrimSpace(row[0]),
		}
		if len(row) > 1 {
			item.Name = strings.TrimSpace(row[1])
		}
		if len(row) > 2 {
			if price, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64); err == nil {
				item.Price = int64(price*100 + 0.5)
			}
		}
		items = append(items, item)
	}

	return items, nil
}
