package repository

import (
	"context"
	"errors"

	"orderlist/internal/domain/entity"
	domainRepo "orderlist/internal/domain/repository"
	"orderlist/pkg/pagination"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetByFilename(ctx context.Context, filename string) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).First(&order, "filename = ?", filename).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetWithItems(ctx context.Context, filename string) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "filename = ?", filename).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Order{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepository) Search(ctx context.Context, params *domainRepo.OrderSearchParams) ([]entity.Order, error) {
	var orders []entity.Order

	query := r.db.WithContext(ctx).Model(&entity.Order{})

	if params.Customer != "" {
		query = query.Where("customer_name ILIKE ?", "%"+params.Customer+"%")
	}

	if params.CreatedBy != "" {
		query = query.Where("created_by ILIKE ?", "%"+params.CreatedBy+"%")
	}

	if params.Date != nil {
		// Compare calendar dates; the session timezone must not shift the
		// match by its offset.
		query = query.Where("DATE(order_date) = ?", params.Date.Format("2006-01-02"))
	}

	err := query.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) DeleteByFilename(ctx context.Context, filename string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order entity.Order
		if err := tx.First(&order, "filename = ?", filename).Error; err != nil {
			return err
		}
		if err := tx.Delete(&entity.OrderItem{}, "order_id = ?", order.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}
