package repository

import (
	"context"

	"orderlist/internal/domain/entity"
)

// CatalogRepository defines the interface for catalog data access
type CatalogRepository interface {
	GetByBarcode(ctx context.Context, barcode string) (*entity.CatalogItem, error)
	ReplaceAll(ctx context.Context, items []entity.CatalogItem) error
	Count(ctx context.Context) (int64, error)
}
