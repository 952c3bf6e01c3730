package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/salesboard/internal/service"
)

type SourceHandler struct {
	service *service.ReportService
}

func NewSourceHandler(service *service.ReportService) *SourceHandler {
	return &SourceHandler{service: service}
}

// GetStatus runs a fresh load and reports whether the export or the sample rows
// were used.
func (h *SourceHandler) GetStatus(c *gin.Context) {
	st, err := h.service.Status(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load source", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, st)
}
