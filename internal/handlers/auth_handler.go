package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-admin/internal/auth"
	"github.com/BruksfildServices01/barber-admin/internal/httperr"
)

// Login issues access tokens.
type Login interface {
	Login(ctx context.Context, username, password string) (string, error)
}

type AuthHandler struct {
	login Login
	log   *zap.Logger
}

func NewAuthHandler(login Login, log *zap.Logger) *AuthHandler {
	return &AuthHandler{login: login, log: log}
}

// --------- Requests ---------

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	token, err := h.login.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			httperr.Unauthorized(c, "invalid_credentials", "Username/password are not valid.")
			return
		}
		h.log.Error("login", zap.Error(err))
		httperr.Internal(c, "internal_error", "Internal server error")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{AccessToken: token})
}
