package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/salesboard/internal/locale"
	"github.com/andresuchdata/salesboard/internal/report"
	"github.com/andresuchdata/salesboard/internal/service"
)

type StockHandler struct {
	service *service.ReportService
}

func NewStockHandler(service *service.ReportService) *StockHandler {
	return &StockHandler{service: service}
}

type periodSalesItem struct {
	Name    string  `json:"name"`
	Sales   float64 `json:"sales"`
	Display string  `json:"display"`
}

type stockLevelItem struct {
	Name      string  `json:"name"`
	Sales     float64 `json:"sales"`
	Remaining float64 `json:"remaining"`
	Display   string  `json:"display"`
}

func (h *StockHandler) GetExpiry(c *gin.Context) {
	view := strings.ToLower(strings.TrimSpace(c.DefaultQuery("view", "full")))
	if view != "full" && view != "dashboard" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "view must be full or dashboard"})
		return
	}

	r, err := h.service.Expiry(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to categorize expiry", "details": err.Error()})
		return
	}

	if view == "dashboard" {
		c.JSON(http.StatusOK, r.Dashboard())
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *StockHandler) parsePeriod(c *gin.Context) (report.Period, bool) {
	p, err := report.ParsePeriod(c.Param("period"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "details": c.Param("period")})
		return "", false
	}
	return p, true
}

func (h *StockHandler) GetPeriodSales(c *gin.Context) {
	p, ok := h.parsePeriod(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	entries, err := h.service.PeriodSales(c.Request.Context(), p, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute period sales", "details": err.Error()})
		return
	}

	items := make([]periodSalesItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, periodSalesItem{Name: e.Name, Sales: e.Sales, Display: locale.FormatNumber(e.Sales, 0)})
	}

	c.JSON(http.StatusOK, gin.H{
		"period": p,
		"label":  p.Label(),
		"items":  items,
	})
}

func (h *StockHandler) GetStockLevels(c *gin.Context) {
	p, ok := h.parsePeriod(c)
	if !ok {
		return
	}

	levels, err := h.service.StockLevels(c.Request.Context(), p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stock levels", "details": err.Error()})
		return
	}

	items := make([]stockLevelItem, 0, len(levels))
	for _, l := range levels {
		items = append(items, stockLevelItem{
			Name:      l.Name,
			Sales:     l.Sales,
			Remaining: l.Remaining,
			Display:   locale.FormatNumber(l.Remaining, 0),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"period": p,
		"label":  p.Label(),
		"items":  items,
	})
}
