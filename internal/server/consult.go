package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/run-bigpig/carpick/internal/orchestrator"
)

// handleConsult runs one consultation turn and streams orchestrator events
// to the client as SSE frames. The connection stays open for the duration of
// the turn; the final frame is either collaboration_complete or error.
func (s *Server) handleConsult(c *gin.Context) {
	var req orchestrator.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Question == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	writeSSE(c.Writer, "connected", gin.H{"type": "connected"})
	c.Writer.Flush()

	// Events are produced by the orchestrator goroutine-free on this request
	// context, so writing straight to the response writer is safe.
	cb := func(ev orchestrator.Event) {
		writeSSE(c.Writer, string(ev.Type), ev)
		c.Writer.Flush()
	}

	if _, err := s.orch.Consult(c.Request.Context(), req, cb); err != nil {
		log.Warn("consult turn failed: %v", err)
	}
}

// writeSSE writes a single SSE event frame.
func writeSSE(w io.Writer, event string, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, string(jsonData))
}
