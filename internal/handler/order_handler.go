package handler

import (
	"errors"
	"net/http"

	"taller-go/internal/middleware"
	"taller-go/internal/model"
	"taller-go/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderHandler serves the workshop order endpoints.
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates an OrderHandler.
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrderRequest opens an order for a known customer.
type CreateOrderRequest struct {
	CustomerID  uint   `json:"customerId" binding:"required"`
	VehicleID   uint   `json:"vehicleId"`
	Description string `json:"description" binding:"required"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "customerId and description are required"})
		return
	}

	order := &model.WorkshopOrder{
		CompanyID:   middleware.CompanyID(c),
		CustomerID:  req.CustomerID,
		VehicleID:   req.VehicleID,
		Description: req.Description,
	}
	if err := h.orderService.CreateForCustomer(c.Request.Context(), order); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "customer not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "created", "data": order})
}

func (h *OrderHandler) List(c *gin.Context) {
	offset, limit := pagination(c)
	orders, total, err := h.orderService.List(c.Request.Context(), middleware.CompanyID(c), offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "listing orders failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    gin.H{"items": orders, "total": total},
	})
}

func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orderService.FindByNumber(c.Request.Context(), middleware.CompanyID(c), c.Param("number"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": order})
}

// UpdateStatusRequest changes an order's status.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=OPEN IN_PROGRESS READY DELIVERED CANCELLED"`
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "status must be one of OPEN, IN_PROGRESS, READY, DELIVERED, CANCELLED"})
		return
	}
	order, err := h.orderService.UpdateStatus(c.Request.Context(), middleware.CompanyID(c), c.Param("number"), req.Status)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "updated", "data": order})
}

// AddCommentRequest appends a workshop note.
type AddCommentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

func (h *OrderHandler) AddComment(c *gin.Context) {
	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "comment is required"})
		return
	}
	if err := h.orderService.AddComment(c.Request.Context(), middleware.CompanyID(c), c.Param("number"), req.Comment); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "created"})
}

// AddItemRequest appends a labor or part line.
type AddItemRequest struct {
	ProductID uint    `json:"productId"`
	Concept   string  `json:"concept" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unitPrice" binding:"required,gt=0"`
}

func (h *OrderHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "concept, quantity and unitPrice are required"})
		return
	}
	item := &model.OrderItem{
		ProductID: req.ProductID,
		Concept:   req.Concept,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	}
	err := h.orderService.AddItem(c.Request.Context(), middleware.CompanyID(c), c.Param("number"), item)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": err.Error()})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "created", "data": item})
}
