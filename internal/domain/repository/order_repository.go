package repository

import (
	"context"
	"time"

	"orderlist/internal/domain/entity"
	"orderlist/pkg/pagination"
)

// OrderSearchParams holds the ANDed search filters for order history
type OrderSearchParams struct {
	Customer  string
	CreatedBy string
	Date      *time.Time
}

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByFilename(ctx context.Context, filename string) (*entity.Order, error)
	GetWithItems(ctx context.Context, filename string) (*entity.Order, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Order, int64, error)
	Search(ctx context.Context, params *OrderSearchParams) ([]entity.Order, error)
	DeleteByFilename(ctx context.Context, filename string) error
}
