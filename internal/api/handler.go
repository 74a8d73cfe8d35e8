// Package api exposes the analysis pipeline over HTTP.
package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"invplanner/internal/config"
	"invplanner/internal/observability"
	"invplanner/internal/service/analysis"
)

// Handler API handlers
type Handler struct {
	cfg      *config.AppConfig
	analyzer *analysis.Analyzer
	log      *observability.Logger
	started  time.Time
}

// NewHandler creates a Handler
func NewHandler(cfg *config.AppConfig, analyzer *analysis.Analyzer, log *observability.Logger) *Handler {
	if log == nil {
		log = observability.Nop()
	}
	return &Handler{
		cfg:      cfg,
		analyzer: analyzer,
		log:      log.WithOperation("api"),
		started:  time.Now(),
	}
}

// RegisterRoutes registers API routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// service status
	router.GET("/status", h.GetStatus)
	router.GET("/schemas", h.ListSchemas)

	// workbook analysis
	router.POST("/upload", h.Upload)
	router.POST("/upload/stream", h.UploadStream)
	router.POST("/export", h.Export)
}
