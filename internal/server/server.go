package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"invplanner/internal/api"
	"invplanner/internal/config"
	"invplanner/internal/importer"
	"invplanner/internal/observability"
	"invplanner/internal/service/analysis"
)

// Server HTTP server
type Server struct {
	router *gin.Engine
	api    *api.Handler
	log    *observability.Logger
}

// NewServer creates a server from config
func NewServer(cfg *config.AppConfig, log *observability.Logger) *Server {
	if log == nil {
		log = observability.Nop()
	}
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	analyzer := analysis.NewAnalyzer(analysis.Options{
		Extract: importer.Options{
			SampleRows:     cfg.Extract.SampleRows,
			HeaderScanRows: cfg.Extract.HeaderScanRows,
			TypeSampleRows: cfg.Extract.TypeSampleRows,
		},
		ClassifySampleRows: cfg.Extract.ClassifySampleRows,
	}, log)

	router := gin.New()
	router.Use(gin.Recovery())
	// multipart parts beyond this stay on disk
	router.MaxMultipartMemory = cfg.Upload.MaxBytes

	s := &Server{
		router: router,
		api:    api.NewHandler(cfg, analyzer, log),
		log:    log.WithOperation("http"),
	}
	s.setupRoutes()
	return s
}

// setupRoutes registers middleware and routes
func (s *Server) setupRoutes() {
	s.router.Use(s.requestLogger())

	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// Handler underlying http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts listening on port
func (s *Server) Run(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.log.Info().Str("addr", addr).Msg("listening")
	return s.router.Run(addr)
}
