package handler

import (
	"net/http"
	"strings"

	"taller-go/internal/middleware"
	"taller-go/internal/model"
	"taller-go/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductHandler serves the catalog endpoints.
type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ProductRequest is the create/update payload.
type ProductRequest struct {
	SKU      string  `json:"sku" binding:"required"`
	Barcode  string  `json:"barcode"`
	Name     string  `json:"name" binding:"required"`
	Brand    string  `json:"brand"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Cost     float64 `json:"cost"`
	Stock    int     `json:"stock"`
	MinStock int     `json:"minStock"`
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "sku, name and a positive price are required"})
		return
	}

	product := &model.Product{
		CompanyID: middleware.CompanyID(c),
		SKU:       req.SKU,
		Barcode:   req.Barcode,
		Name:      req.Name,
		Brand:     req.Brand,
		Price:     req.Price,
		Cost:      req.Cost,
		Stock:     req.Stock,
		MinStock:  req.MinStock,
	}
	if err := h.productService.Create(c.Request.Context(), product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "creating product failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "created", "data": product})
}

func (h *ProductHandler) List(c *gin.Context) {
	offset, limit := pagination(c)
	products, total, err := h.productService.List(c.Request.Context(), middleware.CompanyID(c), offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "listing products failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    gin.H{"items": products, "total": total},
	})
}

// Lookup finds one product by ?barcode= or ?sku=.
func (h *ProductHandler) Lookup(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := middleware.CompanyID(c)

	var (
		product *model.Product
		err     error
	)
	switch {
	case c.Query("barcode") != "":
		product, err = h.productService.FindByBarcode(ctx, companyID, c.Query("barcode"))
	case c.Query("sku") != "":
		product, err = h.productService.FindBySKU(ctx, companyID, c.Query("sku"))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "barcode or sku query parameter required"})
		return
	}
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": product})
}

// Search runs the free-text product search (?q=brake pads bosch).
func (h *ProductHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "q query parameter required"})
		return
	}
	products, err := h.productService.SearchByName(c.Request.Context(), middleware.CompanyID(c), strings.Fields(q), 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "search failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": products})
}

func (h *ProductHandler) LowStock(c *gin.Context) {
	products, err := h.productService.LowStock(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "listing low stock failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": products})
}

// UpdatePriceRequest is the price change payload.
type UpdatePriceRequest struct {
	SKU   string  `json:"sku" binding:"required"`
	Price float64 `json:"price" binding:"required,gt=0"`
}

func (h *ProductHandler) UpdatePrice(c *gin.Context) {
	var req UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "sku and a positive price are required"})
		return
	}
	product, err := h.productService.UpdatePrice(c.Request.Context(), middleware.CompanyID(c), req.SKU, req.Price)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "updated", "data": product})
}
