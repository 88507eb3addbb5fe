package handler

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"
	"orderlist/internal/application/service"
	"orderlist/internal/presentation/http/dto/response"
	"orderlist/pkg/pagination"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Save handles persisting a finished order. The body is a form post with the
// line items as a JSON-encoded array, matching what the terminal submits.
func (h *OrderHandler) Save(c *gin.Context) {
	input := &service.SaveOrderInput{
		CustomerName:  c.PostForm("customer_name"),
		CustomerPhone: c.PostForm("customer_phone"),
		Username:      c.PostForm("username"),
		CreatedBy:     c.PostForm("created_by"),
	}

	itemsJSON := c.PostForm("items")
	if itemsJSON != "" {
		if err := json.Unmarshal([]byte(itemsJSON), &input.Items); err != nil {
			response.BadRequest(c, "Invalid items payload")
			return
		}
	}

	order, err := h.orderService.SaveOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(200, gin.H{"filename": order.Filename})
}

// List handles the paged order history listing
func (h *OrderHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: pageSize,
	}

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(200, gin.H{
		"orders":     orders,
		"pagination": pagination.NewPagination(params.Page, params.PerPage, total),
	})
}

// Search handles the ANDed filter query over customer, creator and date
func (h *OrderHandler) Search(c *gin.Context) {
	orders, err := h.orderService.SearchOrders(
		c.Request.Context(),
		c.Query("customer"),
		c.Query("created_by"),
		c.Query("date"),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(200, gin.H{"orders": orders})
}

// Details handles fetching the full line items of one order
func (h *OrderHandler) Details(c *gin.Context) {
	details, err := h.orderService.GetOrderDetails(c.Request.Context(), c.Param("filename"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(200, details)
}

// Download streams the persisted order artifact
func (h *OrderHandler) Download(c *gin.Context) {
	filename := c.Param("filename")

	path, err := h.orderService.DownloadPath(c.Request.Context(), filename)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.FileAttachment(path, filename)
}

// Delete handles removing an order record and its artifact
func (h *OrderHandler) Delete(c *gin.Context) {
	filename := c.Param("filename")

	if err := h.orderService.DeleteOrder(c.Request.Context(), filename); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(200, gin.H{"deleted": filename})
}
