// internal/server/server.go
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"worklink-matching/internal/common/config"
	"worklink-matching/internal/common/logger"
	"worklink-matching/internal/common/observability"
)

// Pinger is anything with a health-checkable connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server assembles the HTTP surface around the matching subsystem.
type Server struct {
	engine  *gin.Engine
	cfg     config.ServerConfig
	logger  logger.Logger
	obs     *observability.Observability
	pingers map[string]Pinger
}

func New(cfg config.ServerConfig, env string, log logger.Logger, obs *observability.Observability, h *Handlers, pingers map[string]Pinger) *Server {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		engine:  gin.New(),
		cfg:     cfg,
		logger:  log.WithFields(map[string]interface{}{"component": "http"}),
		obs:     obs,
		pingers: pingers,
	}

	s.engine.Use(gin.Recovery(), s.requestLogger())

	s.engine.GET("/healthz", s.healthCheck)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api")
	api.POST("/matching/:jobId/rank", h.RankWorkers)
	api.POST("/jobs/:jobId/team/optimize", h.OptimizeTeam)

	return s
}

// HTTPServer returns the configured http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.engine,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeout) * time.Second,
	}
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		if s.obs != nil {
			s.obs.RecordRequest(c.Request.Context(), route, http.StatusText(c.Writer.Status()))
			s.obs.RecordRequestDuration(c.Request.Context(), route, elapsed)
		}

		s.logger.Info("request handled", map[string]interface{}{
			"method":  c.Request.Method,
			"route":   route,
			"status":  c.Writer.Status(),
			"elapsed": elapsed.String(),
		})
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	for name, p := range s.pingers {
		if err := p.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "failing": name})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
