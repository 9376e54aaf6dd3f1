package handler

import (
	"net/http"
	"strconv"
	"time"

	"taller-go/internal/middleware"
	"taller-go/internal/repository"

	"github.com/gin-gonic/gin"
)

// StatsHandler serves the finance reporting endpoints.
type StatsHandler struct {
	stats repository.StatsRepository
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(stats repository.StatsRepository) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// period reads ?from= and ?to= (YYYY-MM-DD), defaulting to the current month.
func period(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0).Add(-time.Second)

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return from, to, false
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return from, to, false
		}
		to = parsed.AddDate(0, 0, 1).Add(-time.Second)
	}
	return from, to, true
}

func (h *StatsHandler) SalesSummary(c *gin.Context) {
	from, to, ok := period(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "from/to must be YYYY-MM-DD"})
		return
	}
	summary, err := h.stats.SalesSummary(c.Request.Context(), middleware.CompanyID(c), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "computing sales summary failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": summary})
}

func (h *StatsHandler) MonthlySales(c *gin.Context) {
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(time.Now().Year())))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "year must be numeric"})
		return
	}
	months, err := h.stats.MonthlySales(c.Request.Context(), middleware.CompanyID(c), year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "computing monthly sales failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": months})
}

func (h *StatsHandler) TopProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	top, err := h.stats.TopProducts(c.Request.Context(), middleware.CompanyID(c), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "computing top products failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": top})
}

func (h *StatsHandler) IncomeExpense(c *gin.Context) {
	from, to, ok := period(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "from/to must be YYYY-MM-DD"})
		return
	}
	summary, err := h.stats.IncomeExpense(c.Request.Context(), middleware.CompanyID(c), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "computing income/expense failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": summary})
}

func (h *StatsHandler) Receivable(c *gin.Context) {
	rows, err := h.stats.Receivable(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "computing receivable failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": rows})
}
