package spreadsheet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	store, err := NewStore(filepath.Join(dir, "inventory"), filepath.Join(dir, "orders"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestStore_SaveAndLatestInventory(t *testing.T) {
	store := tempStore(t)

	first, err := store.SaveInventoryFile("stock.xlsx", strings.NewReader("one"))
	if err != nil {
		t.Fatalf("SaveInventoryFile: %v", err)
	}
	if !strings.HasSuffix(first, ".xlsx") {
		t.Errorf("stored name = %q, extension not kept", first)
	}

	// Ensure a later modification time for the second file.
	second, err := store.SaveInventoryFile("stock2.xls", strings.NewReader("two"))
	if err != nil {
		t.Fatalf("SaveInventoryFile: %v", err)
	}
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(filepath.Join(store.inventoryDir, second), future, future); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	latest, err := store.LatestInventoryFile()
	if err != nil {
		t.Fatalf("LatestInventoryFile: %v", err)
	}
	if latest != second {
		t.Errorf("latest = %q, want %q", latest, second)
	}
}

func TestStore_LatestInventoryEmpty(t *testing.T) {
	store := tempStore(t)

	latest, err := store.LatestInventoryFile()
	if err != nil {
		t.Fatalf("LatestInventoryFile: %v", err)
	}
	if latest != "" {
		t.Errorf("latest = %q, want empty", latest)
	}
}

func TestStore_LatestInventoryIgnoresOtherFiles(t *testing.T) {
	store := tempStore(t)

	if err := os.WriteFile(filepath.Join(store.inventoryDir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	latest, err := store.LatestInventoryFile()
	if err != nil {
		t.Fatalf("LatestInventoryFile: %v", err)
	}
	if latest != "" {
		t.Errorf("non-spreadsheet file reported as inventory: %q", latest)
	}
}

func TestStore_OrderPathStripsDirectories(t *testing.T) {
	store := tempStore(t)

	got := store.OrderPath("../../etc/passwd")
	if filepath.Dir(got) != store.orderDir {
		t.Errorf("OrderPath escaped the order directory: %q", got)
	}
	if filepath.Base(got) != "passwd" {
		t.Errorf("base = %q", filepath.Base(got))
	}
}

func TestStore_RemoveMissingArtifactIsNoError(t *testing.T) {
	store := tempStore(t)

	if err := store.RemoveOrderArtifact("never-existed.xlsx"); err != nil {
		t.Errorf("RemoveOrderArtifact: %v", err)
	}
}
