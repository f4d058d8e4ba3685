package api

import (
	"net/http"

	apperrors "classroom-qa-demo/backend/pkg/errors"
	"classroom-qa-demo/backend/user/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type loginRequest struct {
	Username string `json:"username"`
}

// Login resolves the supplied username, creating the user on first login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidInputError("INVALID_BODY", err.Error()))
		return
	}

	user, err := h.service.Resolve(c.Request.Context(), req.Username)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}
