package spreadsheet

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"orderlist/internal/domain/entity"
)

// Store keeps uploaded inventory files and generated order artifacts on disk.
type Store struct {
	inventoryDir string
	orderDir     string
}

// NewStore creates a file store, ensuring both directories exist.
func NewStore(inventoryDir, orderDir string) (*Store, error) {
	for _, dir := range []string{inventoryDir, orderDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return &Store{inventoryDir: inventoryDir, orderDir: orderDir}, nil
}

// SaveInventoryFile stores an uploaded inventory file under a timestamped
// name, keeping the original extension. Returns the stored filename.
func (s *Store) SaveInventoryFile(originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := time.Now().Format("2006-01-02_15-04-05") + ext

	f, err := os.Create(filepath.Join(s.inventoryDir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create inventory file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write inventory file: %w", err)
	}
	return name, nil
}

// LatestInventoryFile returns the name of the most recently stored inventory
// file, or "" when none exists.
func (s *Store) LatestInventoryFile() (string, error) {
	entries, err := os.ReadDir(s.inventoryDir)
	if err != nil {
		return "", fmt.Errorf("failed to read inventory dir: %w", err)
	}

	var latest string
	var latestMod time.Time
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".xls" && ext != ".xlsx" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestMod) {
			latest = e.Name()
			latestMod = info.ModTime()
		}
	}
	return latest, nil
}

// OpenInventoryFile opens a stored inventory file by name.
func (s *Store) OpenInventoryFile(name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.inventoryDir, filepath.Base(name)))
}

// WriteOrderArtifact renders the order workbook and stores it under the
// order's filename.
func (s *Store) WriteOrderArtifact(order *entity.Order) error {
	f, err := BuildOrderWorkbook(order)
	if err != nil {
		return fmt.Errorf("failed to build order workbook: %w", err)
	}
	defer f.Close()

	if err := f.SaveAs(s.OrderPath(order.Filename)); err != nil {
		return fmt.Errorf("failed to save order artifact: %w", err)
	}
	return nil
}

// OrderPath returns the on-disk path for an order artifact. The filename is
// reduced to its base so a crafted name cannot escape the order directory.
func (s *Store) OrderPath(filename string) string {
	return filepath.Join(s.orderDir, filepath.Base(filename))
}

// RemoveOrderArtifact deletes the stored artifact for an order. A missing
// file is not an error; the database row is the authoritative record.
func (s *Store) RemoveOrderArtifact(filename string) error {
	err := os.Remove(s.OrderPath(filename))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove order artifact: %w", err)
	}
	return nil
}
