// Package httpapi exposes Quick Skirmish sessions over a JSON HTTP API.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/quick-skirmish/internal/session"
)

// Server is the HTTP front-end of a session manager.
type Server struct {
	engine *gin.Engine
	srv    *http.Server
	log    *log.Logger
}

// NewServer creates a server listening on addr. Call Start to serve.
func NewServer(addr string, sessions *session.Manager, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(AccessLog(logger))
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": sessions.Count()})
	})

	h := &handler{sessions: sessions}
	h.registerRoutes(engine.Group("/api"))

	return &Server{
		engine: engine,
		log:    logger,
		srv: &http.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Start serves HTTP until Shutdown. It returns http.ErrServerClosed after a
// clean shutdown.
func (s *Server) Start() error {
	s.log.Info("Starting HTTP server", "addr", s.srv.Addr)
	return s.srv.ListenAndServe()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}
