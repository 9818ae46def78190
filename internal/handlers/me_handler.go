package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-admin/internal/domain/user"
	"github.com/BruksfildServices01/barber-admin/internal/dto"
	"github.com/BruksfildServices01/barber-admin/internal/httperr"
	"github.com/BruksfildServices01/barber-admin/internal/httpresp"
	"github.com/BruksfildServices01/barber-admin/internal/middleware"
	ucUser "github.com/BruksfildServices01/barber-admin/internal/usecase/user"
)

type MeHandler struct {
	users *ucUser.Users
	log   *zap.Logger
}

func NewMeHandler(users *ucUser.Users, log *zap.Logger) *MeHandler {
	return &MeHandler{users: users, log: log}
}

// GetMe returns the user behind the request's principal.
func (h *MeHandler) GetMe(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		httperr.Unauthorized(c, "unauthorized", "Unauthorized")
		return
	}

	u, err := h.users.Get(c.Request.Context(), p.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httperr.Unauthorized(c, "unauthorized", "Unauthorized")
			return
		}
		h.log.Error("get current user", zap.Uint("user_id", p.UserID), zap.Error(err))
		httperr.Internal(c, "internal_error", "Internal server error")
		return
	}

	httpresp.OK(c, dto.User(*u))
}
