package service

import (
	"context"
	"strings"
	"time"

	"orderlist/internal/domain/entity"
	"orderlist/internal/domain/repository"
	"orderlist/internal/infrastructure/spreadsheet"
	"orderlist/pkg/apperror"
	"orderlist/pkg/pagination"
	"github.com/shopspring/decimal"
)

var vatRate = decimal.NewFromFloat(0.15)

// OrderService handles order persistence and history queries
type OrderService struct {
	orderRepo repository.OrderRepository
	store     *spreadsheet.Store
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo repository.OrderRepository, store *spreadsheet.Store) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		store:     store,
	}
}

// SaveOrderItemInput is one line item as submitted by the terminal
type SaveOrderItemInput struct {
	Barcode  string          `json:"barcode"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Total    decimal.Decimal `json:"total"`
	VAT      decimal.Decimal `json:"vat"`
}

// SaveOrderInput represents the save-order request
type SaveOrderInput struct {
	CustomerName  string
	CustomerPhone string
	Username      string
	CreatedBy     string
	Items         []SaveOrderItemInput
}

// SaveOrder recomputes totals, persists the order and writes its artifact.
// Client-supplied totals are ignored; price and quantity are authoritative.
func (s *OrderService) SaveOrder(ctx context.Context, input *SaveOrderInput) (*entity.Order, error) {
	if strings.TrimSpace(input.CreatedBy) == "" {
		return nil, apperror.NewBadRequestError("created_by is required")
	}

	now := time.Now()
	order := &entity.Order{
		Filename:      orderFilename(now, input.CustomerName, input.Username, input.CreatedBy),
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		Username:      input.Username,
		CreatedBy:     input.CreatedBy,
		OrderDate:     now,
	}

	for _, item := range input.Items {
		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}
		price := item.Price.Round(2)
		total := price.Mul(decimal.NewFromInt(int64(quantity)))
		vat := total.Mul(vatRate).Round(2)

		order.Items = append(order.Items, entity.OrderItem{
			Barcode:   item.Barcode,
			Name:      item.Name,
			Quantity:  quantity,
			UnitPrice: toCents(price),
			Total:     toCents(total),
			VAT:       toCents(vat),
		})
		order.Total += toCents(total)
		order.VAT += toCents(vat)
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	if err := s.store.WriteOrderArtifact(order); err != nil {
		// Keep the store consistent: no artifact, no record.
		_ = s.orderRepo.DeleteByFilename(ctx, order.Filename)
		return nil, err
	}

	return order, nil
}

// ListOrders returns one page of order history, newest first
func (s *OrderService) ListOrders(ctx context.Context, params *pagination.PaginationParams) ([]entity.Order, int64, error) {
	return s.orderRepo.List(ctx, params)
}

// SearchOrders runs an ANDed filter query over customer, creator and date
func (s *OrderService) SearchOrders(ctx context.Context, customer, createdBy, dateStr string) ([]entity.Order, error) {
	params := &repository.OrderSearchParams{
		Customer:  customer,
		CreatedBy: createdBy,
	}

	if dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, apperror.NewBadRequestError("Invalid date, expected YYYY-MM-DD")
		}
		params.Date = &date
	}

	return s.orderRepo.Search(ctx, params)
}

// OrderDetails holds a preview of one order: the artifact's column headers
// plus its line items.
type OrderDetails struct {
	Headers []string           `json:"headers"`
	Items   []entity.OrderItem `json:"items"`
}

// GetOrderDetails fetches the full line items of one order by filename
func (s *OrderService) GetOrderDetails(ctx context.Context, filename string) (*OrderDetails, error) {
	order, err := s.orderRepo.GetWithItems(ctx, filename)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	return &OrderDetails{
		Headers: spreadsheet.ItemHeaders,
		Items:   order.Items,
	}, nil
}

// DownloadPath returns the artifact path for an existing order
func (s *OrderService) DownloadPath(ctx context.Context, filename string) (string, error) {
	order, err := s.orderRepo.GetByFilename(ctx, filename)
	if err != nil {
		return "", err
	}
	if order == nil {
		return "", apperror.NewNotFoundError("Order")
	}
	return s.store.OrderPath(order.Filename), nil
}

// DeleteOrder removes an order record and its artifact
func (s *OrderService) DeleteOrder(ctx context.Context, filename string) error {
	order, err := s.orderRepo.GetByFilename(ctx, filename)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}

	if err := s.orderRepo.DeleteByFilename(ctx, order.Filename); err != nil {
		return err
	}
	return s.store.RemoveOrderArtifact(order.Filename)
}

// orderFilename builds the artifact filename the persistence store assigns at
// save time, e.g. "2025-01-02_15-04-05_Jane_user1-created by Bob.xlsx".
func orderFilename(now time.Time, customer, username, createdBy string) string {
	stamp := now.Format("2006-01-02_15-04-05")
	return stamp + "_" + cleanFilename(customer) + "_" + cleanFilename(username) +
		"-created by " + cleanFilename(createdBy) + ".xlsx"
}

// cleanFilename keeps letters, digits, spaces, dashes and underscores so the
// assigned name is safe on every filesystem.
func cleanFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// toCents converts a 2-decimal amount to integer cents for storage
func toCents(d decimal.Decimal) int64 {
	return d.Round(2).Shift(2).IntPart()
}
