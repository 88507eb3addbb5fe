package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogItem maps a barcode to a product name and price. The catalog is
// replaced wholesale on every inventory upload.
type CatalogItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Barcode   string    `gorm:"size:100;unique;not null;index" json:"barcode"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Price     int64     `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (ci CatalogItem) MarshalJSON() ([]byte, error) {
	type Alias CatalogItem
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(ci),
		Price: float64(ci.Price) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new catalog item
func (ci *CatalogItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CatalogItem model
func (CatalogItem) TableName() string {
	return "catalog_items"
}

// GetPriceDecimal returns the price as a decimal (for display)
func (ci *CatalogItem) GetPriceDecimal() float64 {
	return float64(ci.Price) / 100
}
