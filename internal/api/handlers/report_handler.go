package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/salesboard/internal/domain"
	"github.com/andresuchdata/salesboard/internal/report"
	"github.com/andresuchdata/salesboard/internal/service"
)

type ReportHandler struct {
	service *service.ReportService
}

func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) parseEntityType(c *gin.Context) (domain.EntityType, bool) {
	t, err := domain.ParseEntityType(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown entity type", "details": c.Param("type")})
		return "", false
	}
	return t, true
}

func (h *ReportHandler) GetOverview(c *gin.Context) {
	previews, err := h.service.Overview(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build overview", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"previews": previews})
}

func (h *ReportHandler) GetTable(c *gin.Context) {
	t, ok := h.parseEntityType(c)
	if !ok {
		return
	}

	opts := report.ParseTableOptions(c.Query("sort_field"), c.Query("sort_direction"))
	table, err := h.service.Table(c.Request.Context(), t, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build table", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, table)
}

func (h *ReportHandler) GetMonthly(c *gin.Context) {
	t, ok := h.parseEntityType(c)
	if !ok {
		return
	}

	points, err := h.service.Monthly(c.Request.Context(), t, c.Query("name"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build monthly totals", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entity_type": t,
		"name":        c.Query("name"),
		"months":      points,
	})
}
