package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"invplanner/internal/model"
)

// StatusResponse service status
type StatusResponse struct {
	Status            string                 `json:"status"`
	UptimeSeconds     int64                  `json:"uptimeSeconds"`
	MaxUploadBytes    int64                  `json:"maxUploadBytes"`
	AllowedExtensions []string               `json:"allowedExtensions"`
	Categories        []model.RecordCategory `json:"categories"`
	BusinessTypes     []model.BusinessType   `json:"businessTypes"`
}

// GetStatus service status
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Status:            "ok",
		UptimeSeconds:     int64(time.Since(h.started).Seconds()),
		MaxUploadBytes:    h.cfg.Upload.MaxBytes,
		AllowedExtensions: h.cfg.Upload.AllowedExtensions,
		Categories:        model.Categories,
		BusinessTypes:     model.BusinessTypes,
	})
}

// ListSchemas extraction schemas
// GET /api/schemas
func (h *Handler) ListSchemas(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"schemas": model.Schemas()})
}
