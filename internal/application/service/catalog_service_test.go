package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"orderlist/internal/domain/entity"
	"orderlist/pkg/apperror"
)

type fakeCatalogRepo struct {
	items    map[string]*entity.CatalogItem
	replaced [][]entity.CatalogItem
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{items: make(map[string]*entity.CatalogItem)}
}

func (r *fakeCatalogRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.CatalogItem, error) {
	return r.items[barcode], nil
}

func (r *fakeCatalogRepo) ReplaceAll(ctx context.Context, items []entity.CatalogItem) error {
	r.replaced = append(r.replaced, items)
	r.items = make(map[string]*entity.CatalogItem)
	for i := range items {
		r.items[items[i].Barcode] = &items[i]
	}
	return nil
}

func (r *fakeCatalogRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

func stockWorkbook(t *testing.T) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{"Barcode", "Name", "Price"},
		{"4006381333931", "Stabilo Pen", 12.5},
		{"5901234123457", "Notebook", 3.99},
	}
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

func TestResolve(t *testing.T) {
	repo := newFakeCatalogRepo()
	repo.items["123"] = &entity.CatalogItem{Barcode: "123", Name: "Pen", Price: 1250}
	svc := NewCatalogService(repo, newTestStore(t))

	item, err := svc.Resolve(context.Background(), "123")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if item.Name != "Pen" || item.Price != 1250 {
		t.Errorf("item = %+v", item)
	}

	_, err = svc.Resolve(context.Background(), "999")
	if appErr := apperror.GetAppError(err); appErr.Code != 404 {
		t.Errorf("unknown barcode error = %v, want 404 app error", err)
	}

	_, err = svc.Resolve(context.Background(), "   ")
	if appErr := apperror.GetAppError(err); appErr.Code != 400 {
		t.Errorf("blank barcode error = %v, want 400 app error", err)
	}
}

func TestImportInventory_ReplacesCatalogWholesale(t *testing.T) {
	repo := newFakeCatalogRepo()
	repo.items["old"] = &entity.CatalogItem{Barcode: "old", Name: "Stale"}
	svc := NewCatalogService(repo, newTestStore(t))

	result, err := svc.ImportInventory(context.Background(), "stock.xlsx", stockWorkbook(t))
	if err != nil {
		t.Fatalf("ImportInventory: %v", err)
	}
	if result.Count != 2 {
		t.Errorf("count = %d, want 2", result.Count)
	}
	if result.SavedAs == "" {
		t.Errorf("saved_as missing from result")
	}

	if _, ok := repo.items["old"]; ok {
		t.Errorf("old catalog row survived a wholesale replace")
	}
	if item := repo.items["4006381333931"]; item == nil || item.Price != 1250 {
		t.Errorf("imported item = %+v", item)
	}
}

func TestImportInventory_RejectsBadExtension(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := NewCatalogService(repo, newTestStore(t))

	_, err := svc.ImportInventory(context.Background(), "stock.csv", strings.NewReader("a,b,c"))
	if appErr := apperror.GetAppError(err); appErr.Code != 400 {
		t.Fatalf("error = %v, want 400 app error", err)
	}
	if len(repo.replaced) != 0 {
		t.Errorf("catalog touched despite rejected upload")
	}
}

func TestImportInventory_RejectsUnparsableFile(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := NewCatalogService(repo, newTestStore(t))

	_, err := svc.ImportInventory(context.Background(), "stock.xlsx", strings.NewReader("not a workbook"))
	if appErr := apperror.GetAppError(err); appErr.Code != 400 {
		t.Fatalf("error = %v, want 400 app error", err)
	}
	if len(repo.replaced) != 0 {
		t.Errorf("catalog replaced with an unparsable upload")
	}
}

func TestLatestInventory_NoneUploaded(t *testing.T) {
	svc := NewCatalogService(newFakeCatalogRepo(), newTestStore(t))

	_, err := svc.LatestInventory(context.Background())
	if appErr := apperror.GetAppError(err); appErr.Code != 404 {
		t.Errorf("error = %v, want 404 app error", err)
	}
}
