package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order represents a persisted, finalized order. The filename assigned at
// save time is the identifier all preview/download/delete calls reference.
type Order struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Filename      string         `gorm:"size:255;unique;not null;index" json:"filename"`
	CustomerName  string         `gorm:"size:255" json:"customer_name"`
	CustomerPhone string         `gorm:"size:50" json:"customer_phone"`
	Username      string         `gorm:"size:255;not null" json:"username"`
	CreatedBy     string         `gorm:"size:255;not null;index" json:"created_by"`
	OrderDate     time.Time      `gorm:"type:date;not null;index" json:"order_date"`
	Total         int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	VAT           int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"order_total"`
		VAT   float64 `json:"order_vat"`
	}{
		Alias: Alias(o),
		Total: float64(o.Total) / 100,
		VAT:   float64(o.VAT) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem represents a line item in a persisted order
type OrderItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	Barcode   string         `gorm:"size:100;not null" json:"barcode"`
	Name      string         `gorm:"size:255" json:"name"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	UnitPrice int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Total     int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	VAT       int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (oi OrderItem) MarshalJSON() ([]byte, error) {
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"price"`
		Total     float64 `json:"total"`
		VAT       float64 `json:"vat"`
	}{
		Alias:     Alias(oi),
		UnitPrice: float64(oi.UnitPrice) / 100,
		Total:     float64(oi.Total) / 100,
		VAT:       float64(oi.VAT) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order item
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
