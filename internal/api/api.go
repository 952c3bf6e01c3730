// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/salesboard/internal/api/handlers"
	"github.com/andresuchdata/salesboard/internal/api/middleware"
	"github.com/andresuchdata/salesboard/internal/service"
)

type Services struct {
	ReportService *service.ReportService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil && services.ReportService != nil {
		sourceHandler := handlers.NewSourceHandler(services.ReportService)
		apiGroup.GET("/source/status", sourceHandler.GetStatus)

		reportHandler := handlers.NewReportHandler(services.ReportService)
		reportGroup := apiGroup.Group("/reports")
		{
			reportGroup.GET("/overview", reportHandler.GetOverview)
			reportGroup.GET("/:type", reportHandler.GetTable)
			reportGroup.GET("/:type/monthly", reportHandler.GetMonthly)
		}

		stockHandler := handlers.NewStockHandler(services.ReportService)
		stockGroup := apiGroup.Group("/stock")
		{
			stockGroup.GET("/expiry", stockHandler.GetExpiry)
			stockGroup.GET("/sales/:period", stockHandler.GetPeriodSales)
			stockGroup.GET("/levels/:period", stockHandler.GetStockLevels)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
