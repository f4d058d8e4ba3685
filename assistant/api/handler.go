package api

import (
	"net/http"

	"classroom-qa-demo/backend/assistant/service"
	apperrors "classroom-qa-demo/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	service *service.ChatService
}

func NewChatHandler(service *service.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type insightRequest struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query"`
}

// PostMessage handles one student assistant turn
func (h *ChatHandler) PostMessage(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidInputError("INVALID_BODY", err.Error()))
		return
	}
	reply, err := h.service.PostMessage(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// GetHistory returns a session's transcript in insertion order
func (h *ChatHandler) GetHistory(c *gin.Context) {
	sessionID := c.Query("session_id")
	history, err := h.service.History(c.Request.Context(), sessionID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// Insight handles a lecturer query over the aggregated student corpus
func (h *ChatHandler) Insight(c *gin.Context) {
	var req insightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidInputError("INVALID_BODY", err.Error()))
		return
	}
	reply, err := h.service.LecturerInsight(c.Request.Context(), req.SessionID, req.Query)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
