package handler

import (
	"github.com/gin-gonic/gin"
	"orderlist/internal/application/service"
	"orderlist/internal/presentation/http/dto/response"
)

// CatalogHandler handles inventory catalog HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
	uploadMaxSize  int64
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService, uploadMaxSize int64) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		uploadMaxSize:  uploadMaxSize,
	}
}

// Resolve handles barcode lookup against the catalog
func (h *CatalogHandler) Resolve(c *gin.Context) {
	item, err := h.catalogService.Resolve(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(200, gin.H{
		"name":  item.Name,
		"price": item.GetPriceDecimal(),
	})
}

// Upload handles an inventory file upload
func (h *CatalogHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Missing file upload")
		return
	}
	defer file.Close()

	if h.uploadMaxSize > 0 && header.Size > h.uploadMaxSize {
		response.BadRequest(c, "File too large")
		return
	}

	result, err := h.catalogService.ImportInventory(c.Request.Context(), header.Filename, file)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(200, result)
}

// Latest handles the latest-inventory marker lookup
func (h *CatalogHandler) Latest(c *gin.Context) {
	filename, err := h.catalogService.LatestInventory(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(200, gin.H{"filename": filename})
}
