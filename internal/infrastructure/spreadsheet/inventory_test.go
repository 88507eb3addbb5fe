package spreadsheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func inventoryWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return &buf
}

func TestParseInventory(t *testing.T) {
	buf := inventoryWorkbook(t, [][]interface{}{
		{"Barcode", "Name", "Price"},
		{"4006381333931", "Stabilo Pen", 12.5},
		{"", "row without a barcode", 1.0},
		{"5901234123457", "Notebook", "3.99"},
		{"1112223334445", "No price column"},
	})

	items, err := ParseInventory(buf)
	if err != nil {
		t.Fatalf("ParseInventory: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("parsed %d items, want 3", len(items))
	}

	if items[0].Barcode != "4006381333931" || items[0].Name != "Stabilo Pen" || items[0].Price != 1250 {
		t.Errorf("item 0 = %+v", items[0])
	}
	if items[1].Price != 399 {
		t.Errorf("item 1 price = %d cents, want 399", items[1].Price)
	}
	if items[2].Price != 0 {
		t.Errorf("missing price column did not fall back to 0: %+v", items[2])
	}
}

func TestParseInventory_HeaderOnlyWorkbook(t *testing.T) {
	buf := inventoryWorkbook(t, [][]interface{}{{"Barcode", "Name", "Price"}})

	items, err := ParseInventory(buf)
	if err != nil {
		t.Fatalf("ParseInventory: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("parsed %d items from a header-only workbook", len(items))
	}
}

func TestParseInventory_RejectsNonWorkbook(t *testing.T) {
	_, err := ParseInventory(strings.NewReader("this is not a zip archive"))
	if err == nil {
		t.Fatalf("ParseInventory accepted garbage input")
	}
}
