package server

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Replier answers a single user query. Satisfied by assistant.Assistant.
type Replier interface {
	Reply(ctx context.Context, query string) (string, error)
}

type Handler struct {
	Assistant Replier
	Logger    *slog.Logger
}

func NewHandler(a Replier) *Handler {
	return &Handler{Assistant: a, Logger: slog.Default()}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", h.health)
	api := r.Group("/api")
	{
		api.POST("/chat", h.chat)
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type chatRequest struct {
	Query string `json:"query"`
}

type chatResponse struct {
	Answer string `json:"answer"`
}

func (h *Handler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query must not be empty"})
		return
	}

	answer, err := h.Assistant.Reply(c.Request.Context(), query)
	if err != nil {
		h.Logger.Error("Chat request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, chatResponse{Answer: answer})
}
