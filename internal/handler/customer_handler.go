package handler

import (
	"net/http"
	"strconv"

	"taller-go/internal/middleware"
	"taller-go/internal/model"
	"taller-go/internal/service"

	"github.com/gin-gonic/gin"
)

// CustomerHandler serves the customer and vehicle endpoints.
type CustomerHandler struct {
	customerService service.CustomerService
}

// NewCustomerHandler creates a CustomerHandler.
func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CreateCustomerRequest is the customer creation payload.
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	TaxID   string `json:"taxId"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "name is required"})
		return
	}

	customer := &model.Customer{
		CompanyID: middleware.CompanyID(c),
		Name:      req.Name,
		TaxID:     req.TaxID,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
	}
	if err := h.customerService.Create(c.Request.Context(), customer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "creating customer failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "created", "data": customer})
}

func (h *CustomerHandler) List(c *gin.Context) {
	offset, limit := pagination(c)
	customers, total, err := h.customerService.List(c.Request.Context(), middleware.CompanyID(c), offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "listing customers failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    gin.H{"items": customers, "total": total},
	})
}

func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "invalid customer id"})
		return
	}
	customer, err := h.customerService.Get(c.Request.Context(), middleware.CompanyID(c), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "customer not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": customer})
}

// AddVehicleRequest is the vehicle attachment payload.
type AddVehicleRequest struct {
	Plate string `json:"plate" binding:"required"`
	Brand string `json:"brand"`
	Model string `json:"model"`
	Year  int    `json:"year"`
}

func (h *CustomerHandler) AddVehicle(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "invalid customer id"})
		return
	}
	var req AddVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "plate is required"})
		return
	}

	vehicle := &model.Vehicle{
		CustomerID: uint(id),
		Plate:      req.Plate,
		Brand:      req.Brand,
		Model:      req.Model,
		Year:       req.Year,
	}
	if err := h.customerService.AddVehicle(c.Request.Context(), middleware.CompanyID(c), vehicle); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "customer not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "created", "data": vehicle})
}

// pagination reads ?page= and ?size= with sane defaults.
func pagination(c *gin.Context) (offset, limit int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	return (page - 1) * size, size
}
