// Package api exposes the dialogue engine over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kdhyo/ledger-ai/internal/agent/engine"
	"github.com/kdhyo/ledger-ai/internal/agent/model"
)

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

type confirmRequest struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token" binding:"required"`
	Decision  string `json:"decision" binding:"required"`
}

type turnResponse struct {
	Reply   string                     `json:"reply"`
	Confirm *model.PendingConfirmation `json:"pending_confirm,omitempty"`
}

// Register mounts the chat, confirm, health and metrics routes.
func Register(r *gin.Engine, eng *engine.Engine) {
	h := &handler{engine: eng}

	r.POST("/chat", h.chat)
	r.POST("/confirm", h.confirm)
	r.GET("/health", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

type handler struct {
	engine *engine.Engine
}

func (h *handler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	result := h.engine.HandleMessage(c.Request.Context(), req.SessionID, req.Message)
	turnDuration.Observe(time.Since(start).Seconds())
	turnsTotal.WithLabelValues("chat").Inc()
	if result.Confirm != nil {
		pendingTurns.Inc()
	}

	c.JSON(http.StatusOK, turnResponse{Reply: result.Reply, Confirm: result.Confirm})
}

func (h *handler) confirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.engine.HandleConfirmation(c.Request.Context(), req.SessionID, req.Token, req.Decision)
	turnsTotal.WithLabelValues("confirm").Inc()
	if result.Confirm != nil {
		pendingTurns.Inc()
	}

	c.JSON(http.StatusOK, turnResponse{Reply: result.Reply, Confirm: result.Confirm})
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
