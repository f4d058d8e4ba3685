package api

import (
	"net/http"
	"strconv"

	"classroom-qa-demo/backend/forum/service"
	apperrors "classroom-qa-demo/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

type ForumHandler struct {
	service *service.ForumService
}

func NewForumHandler(service *service.ForumService) *ForumHandler {
	return &ForumHandler{service: service}
}

type createQuestionRequest struct {
	Author  string   `json:"author"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type updateQuestionRequest struct {
	Username string    `json:"username"`
	Content  string    `json:"content"`
	Tags     *[]string `json:"tags"`
}

type resolveQuestionRequest struct {
	Username string `json:"username"`
	Resolved bool   `json:"resolved"`
}

type deleteRequest struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type createCommentRequest struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

type updateCommentRequest struct {
	Username string `json:"username"`
	Content  string `json:"content"`
}

type reactRequest struct {
	Username     string `json:"username"`
	ReactionType string `json:"reaction_type"`
}

func (h *ForumHandler) ListQuestions(c *gin.Context) {
	views, err := h.service.ListQuestions(c.Request.Context(), c.Query("username"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *ForumHandler) CreateQuestion(c *gin.Context) {
	var req createQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidInputError("INVALID_BODY", err.Error()))
		return
	}
	question, err := h.service.CreateQuestion(c.Request.Context(), req.Author, req.Content, req.Tags)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, question)
}

func (h *ForumHandler) UpdateQuestion(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidInputError("INVALID_BODY", err.Error()))
		return
	}
	question, err := h.service.UpdateQuestion(c.Request.Context(), id, req.Username, req.Content, req.Tags)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, question)
}

func (h *ForumHandler) ResolveQuestion(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req resolveQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidInputError("INVALID_BODY", err.Error()))
		return
	}
	question, err := h.service.ResolveQuestion(c.Request.Context(), id, req.Username, req.Resolved)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, question)
}

func (h *ForumHandler) DeleteQuestion(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidInputError("INVALID_BODY", err.Error()))
		return
	}
	if err := h.service.DeleteQuestion(c.Request.Context(), id, req.Username, req.Role); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *ForumHandler) ReactToQuestion(c *gin.Context) {
	h.react(c, service.TargetQuestion)
}

func (h *ForumHandler) ListComments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	views, err := h.service.ListComments(c.Request.Context(), id, c.Query("username"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *ForumHandler) CreateComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidInputError("INVALID_BODY", err.Error()))
		return
	}
	comment, err := h.service.CreateComment(c.Request.Context(), id, req.Author, req.Content)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *ForumHandler) UpdateComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidInputError("INVALID_BODY", err.Error()))
		return
	}
	comment, err := h.service.UpdateComment(c.Request.Context(), id, req.Username, req.Content)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *ForumHandler) DeleteComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidInputError("INVALID_BODY", err.Error()))
		return
	}
	if err := h.service.DeleteComment(c.Request.Context(), id, req.Username, req.Role); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *ForumHandler) ReactToComment(c *gin.Context) {
	h.react(c, service.TargetComment)
}

func (h *ForumHandler) react(c *gin.Context, targetKind string) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidInputError("INVALID_BODY", err.Error()))
		return
	}
	result, err := h.service.React(c.Request.Context(), targetKind, id, req.Username, req.ReactionType)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(result)})
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.Error(apperrors.NewInvalidInputError("INVALID_ID", "id must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}
