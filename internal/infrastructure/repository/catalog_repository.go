package repository

import (
	"context"
	"errors"

	"orderlist/internal/domain/entity"
	domainRepo "orderlist/internal/domain/repository"
	"gorm.io/gorm"
)

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) domainRepo.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetByBarcode(ctx context.Context, barcode string) (*entity.CatalogItem, error) {
	var item entity.CatalogItem
	err := r.db.WithContext(ctx).First(&item, "barcode = ?", barcode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

// ReplaceAll swaps the whole catalog for the given items in one transaction.
// An upload always supersedes the previous inventory file.
func (r *catalogRepository) ReplaceAll(ctx context.Context, items []entity.CatalogItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entity.CatalogItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.CreateInBatches(items, 500).Error
	})
}

func (r *catalogRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.CatalogItem{}).Count(&total).Error
	return total, err
}
