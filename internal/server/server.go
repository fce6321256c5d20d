package server

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salesdash/salesdash/internal/analytics"
	"github.com/salesdash/salesdash/internal/config"
	"github.com/salesdash/salesdash/internal/dataset"
)

type Server struct {
	router *gin.Engine
	store  *dataset.Store
	engine *analytics.Engine
	cfg    *config.Config
}

// NewServer creates a new server instance over the loaded store.
func NewServer(store *dataset.Store, cfg *config.Config) *Server {
	router := gin.New()
	router.Use(RequestLogger(), gin.Recovery())
	router.SetHTMLTemplate(template.Must(template.New("dashboard").Parse(dashboardHTML)))

	server := &Server{
		router: router,
		store:  store,
		engine: analytics.NewEngine(store.Snapshot(), cfg.Dashboard.TopN),
		cfg:    cfg,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.dashboardPage)

	api := s.router.Group("/api")
	{
		api.GET("/health", s.healthCheck)
		api.GET("/bounds", s.bounds)
		api.GET("/dashboard", s.dashboard)
		api.GET("/charts/:name", s.chartURL)
		api.GET("/export", s.export)
	}
}

// healthCheck endpoint for monitoring
func (s *Server) healthCheck(c *gin.Context) {
	if err := s.store.HealthCheck(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "salesdash",
		"orders":  s.store.Snapshot().Orders,
	})
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
