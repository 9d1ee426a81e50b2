package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"macrodash/internal/config"
	"macrodash/internal/dashboard"
)

// Server exposes the dashboard page and the JSON API.
type Server struct {
	addr   string
	router *gin.Engine
	srv    *http.Server
}

// NewServer builds the HTTP server around the snapshot service.
func NewServer(cfg *config.Config, svc *dashboard.Service) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	h := &handlers{cfg: cfg, svc: svc}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/", h.handleDashboard)
	router.GET("/charts/compare", h.handleCompareChart)
	router.GET("/charts/detail", h.handleDetailChart)

	api := router.Group("/api")
	api.GET("/snapshot", h.handleSnapshot)
	api.GET("/series", h.handleSeries)
	api.GET("/detail", h.handleDetail)

	return &Server{
		addr:   cfg.Server.Addr,
		router: router,
		srv:    &http.Server{Addr: cfg.Server.Addr, Handler: router},
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[INFO] http server listening on %s", s.addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("[INFO] %s %s status=%d dur=%s ip=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(),
			time.Since(start).Round(time.Millisecond), c.ClientIP())
	}
}
