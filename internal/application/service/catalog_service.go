package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"orderlist/internal/domain/entity"
	"orderlist/internal/domain/repository"
	"orderlist/internal/infrastructure/spreadsheet"
	"orderlist/pkg/apperror"
)

// CatalogService handles inventory catalog operations
type CatalogService struct {
	catalogRepo repository.CatalogRepository
	store       *spreadsheet.Store
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalogRepo repository.CatalogRepository, store *spreadsheet.Store) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		store:       store,
	}
}

// Resolve looks up a barcode in the catalog
func (s *CatalogService) Resolve(ctx context.Context, barcode string) (*entity.CatalogItem, error) {
	if strings.TrimSpace(barcode) == "" {
		return nil, apperror.NewBadRequestError("Barcode is required")
	}

	item, err := s.catalogRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}
	return item, nil
}

// ImportResult describes the outcome of an inventory upload
type ImportResult struct {
	Count   int    `json:"count"`
	SavedAs string `json:"saved_as"`
}

// ImportInventory validates, stores and parses an uploaded inventory file,
// then replaces the catalog wholesale with its rows.
func (s *CatalogService) ImportInventory(ctx context.Context, filename string, r io.Reader) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".xls" && ext != ".xlsx" {
		return nil, apperror.NewBadRequestError("Only .xls and .xlsx files are allowed.")
	}

	// Buffer the upload: it is both stored on disk and parsed.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	items, err := spreadsheet.ParseInventory(bytes.NewReader(data))
	if err != nil {
		return nil, apperror.NewBadRequestError("Could not parse inventory file")
	}

	savedAs, err := s.store.SaveInventoryFile(filename, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if err := s.catalogRepo.ReplaceAll(ctx, items); err != nil {
		return nil, err
	}

	return &ImportResult{Count: len(items), SavedAs: savedAs}, nil
}

// LatestInventory returns the filename of the most recent inventory upload
func (s *CatalogService) LatestInventory(ctx context.Context) (string, error) {
	name, err := s.store.LatestInventoryFile()
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", apperror.NewNotFoundError("Inventory file")
	}
	return name, nil
}
