// Package server hosts the interactive portfolio surface.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gitfolio/internal/config"
)

// Server wraps the gin engine with lifecycle management.
type Server struct {
	router *gin.Engine
	cfg    *config.Config
	httpd  *http.Server
}

// New creates the HTTP server for the interactive variant.
func New(cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	return &Server{router: router, cfg: cfg}
}

// Router exposes the gin router for route registration.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start listens until Shutdown or a listener error.
func (s *Server) Start() error {
	s.httpd = &http.Server{
		Addr:         fmt.Sprintf(":%s", s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	log.Printf("Serving portfolio on port %s", s.cfg.Port)
	if err := s.httpd.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpd == nil {
		return nil
	}
	return s.httpd.Shutdown(ctx)
}
