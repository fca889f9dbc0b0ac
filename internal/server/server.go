// Package server exposes the consultation over HTTP: a streaming SSE
// endpoint for turns plus session lookup and health probes.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/run-bigpig/carpick/internal/logger"
	"github.com/run-bigpig/carpick/internal/orchestrator"
	"github.com/run-bigpig/carpick/internal/session"
)

var log = logger.New("Server")

// Server wires the orchestrator and session manager behind gin.
type Server struct {
	orch     *orchestrator.Orchestrator
	sessions *session.Manager
}

// New builds a Server.
func New(orch *orchestrator.Orchestrator, sessions *session.Manager) *Server {
	return &Server{orch: orch, sessions: sessions}
}

// Router assembles the gin handler tree.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", s.handleHealth)
	router.POST("/api/consult", s.handleConsult)
	router.GET("/api/sessions/:id", s.handleGetSession)
	return router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	log.Info("listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleGetSession(c *gin.Context) {
	sess, err := s.sessions.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "session store unavailable"})
		return
	}
	if sess == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, sess)
}
