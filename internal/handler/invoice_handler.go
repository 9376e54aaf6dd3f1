package handler

import (
	"net/http"
	"time"

	"taller-go/internal/middleware"
	"taller-go/internal/model"
	"taller-go/internal/service"

	"github.com/gin-gonic/gin"
)

// InvoiceHandler serves the invoicing and expense endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates an InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// IssueRequest bills either a whole order or ad-hoc lines.
type IssueRequest struct {
	OrderNumber string             `json:"orderNumber"`
	CustomerID  uint               `json:"customerId"`
	Items       []IssueItemRequest `json:"items"`
}

// IssueItemRequest is one ad-hoc billed line.
type IssueItemRequest struct {
	Concept   string  `json:"concept" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unitPrice" binding:"required,gt=0"`
}

func (h *InvoiceHandler) Issue(c *gin.Context) {
	var req IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "invalid invoice payload"})
		return
	}

	ctx := c.Request.Context()
	companyID := middleware.CompanyID(c)

	if req.OrderNumber != "" {
		invoice, err := h.invoiceService.IssueForOrder(ctx, companyID, req.OrderNumber)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "issued", "data": invoice})
		return
	}

	if req.CustomerID == 0 || len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "orderNumber or customerId with items required"})
		return
	}
	items := make([]model.InvoiceItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, model.InvoiceItem{
			Concept:   it.Concept,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	invoice, err := h.invoiceService.Issue(ctx, companyID, req.CustomerID, items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "issuing invoice failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "issued", "data": invoice})
}

func (h *InvoiceHandler) List(c *gin.Context) {
	offset, limit := pagination(c)
	invoices, total, err := h.invoiceService.List(c.Request.Context(), middleware.CompanyID(c), offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "listing invoices failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    gin.H{"items": invoices, "total": total},
	})
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	invoice, err := h.invoiceService.FindByNumber(c.Request.Context(), middleware.CompanyID(c), c.Param("number"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "invoice not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": invoice})
}

func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	invoice, err := h.invoiceService.MarkPaid(c.Request.Context(), middleware.CompanyID(c), c.Param("number"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "invoice not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "paid", "data": invoice})
}

// Document returns a presigned download link for the stored invoice file.
func (h *InvoiceHandler) Document(c *gin.Context) {
	url, err := h.invoiceService.DocumentURL(c.Request.Context(), middleware.CompanyID(c), c.Param("number"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "invoice document not available"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": gin.H{"url": url}})
}

// ExpenseRequest records an outgoing payment.
type ExpenseRequest struct {
	Concept string  `json:"concept" binding:"required"`
	Amount  float64 `json:"amount" binding:"required,gt=0"`
	SpentAt string  `json:"spentAt"` // 2006-01-02, defaults to today
}

func (h *InvoiceHandler) RecordExpense(c *gin.Context) {
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "concept and a positive amount are required"})
		return
	}

	expense := &model.Expense{
		CompanyID: middleware.CompanyID(c),
		Concept:   req.Concept,
		Amount:    req.Amount,
	}
	if req.SpentAt != "" {
		spentAt, err := time.Parse("2006-01-02", req.SpentAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "spentAt must be YYYY-MM-DD"})
			return
		}
		expense.SpentAt = spentAt
	}
	if err := h.invoiceService.RecordExpense(c.Request.Context(), expense); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "recording expense failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "created", "data": expense})
}
