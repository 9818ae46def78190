package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-admin/internal/domain/user"
	"github.com/BruksfildServices01/barber-admin/internal/dto"
	"github.com/BruksfildServices01/barber-admin/internal/httperr"
	"github.com/BruksfildServices01/barber-admin/internal/httpresp"
	ucUser "github.com/BruksfildServices01/barber-admin/internal/usecase/user"
)

type UsersHandler struct {
	users *ucUser.Users
	log   *zap.Logger
}

func NewUsersHandler(users *ucUser.Users, log *zap.Logger) *UsersHandler {
	return &UsersHandler{users: users, log: log}
}

// --------- Requests ---------

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type CreateFirstUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	ID       uint    `json:"id" binding:"required"`
	Name     *string `json:"name" binding:"omitempty,min=1"`
	Password *string `json:"password" binding:"omitempty,min=1"`
	Role     *string `json:"role"`
}

// --------- Handlers ---------

func (h *UsersHandler) Roles(c *gin.Context) {
	httpresp.List(c, domain.Roles())
}

func (h *UsersHandler) Any(c *gin.Context) {
	anyUsers, err := h.users.Any(c.Request.Context())
	if err != nil {
		h.internal(c, "count users", err)
		return
	}
	httpresp.OK(c, anyUsers)
}

func (h *UsersHandler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	opts := domain.ListOptions{Desc: q.Desc()}
	switch q.SortField {
	case "name":
		opts.SortField = domain.SortByName
	case "role":
		opts.SortField = domain.SortByRole
	}

	users, err := h.users.List(c.Request.Context(), opts)
	if err != nil {
		h.internal(c, "list users", err)
		return
	}
	httpresp.List(c, dto.Map(users, dto.User))
}

func (h *UsersHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	u, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "get user", err)
		return
	}
	httpresp.OK(c, dto.User(*u))
}

func (h *UsersHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		httperr.BadRequest(c, "invalid_role", domain.RoleListMessage())
		return
	}

	u, err := h.users.Create(c.Request.Context(), ucUser.CreateUserInput{
		Name:     req.Name,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		h.writeError(c, "create user", err)
		return
	}
	httpresp.Created(c, dto.User(*u))
}

func (h *UsersHandler) CreateFirst(c *gin.Context) {
	var req CreateFirstUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Once users exist the answer does not depend on the payload.
		if anyUsers, cerr := h.users.Any(c.Request.Context()); cerr == nil && anyUsers {
			h.writeError(c, "create first user", domain.ErrUsersExist)
			return
		}
		httperr.InvalidRequest(c, err)
		return
	}

	u, err := h.users.CreateFirst(c.Request.Context(), req.Name, req.Password)
	if err != nil {
		h.writeError(c, "create first user", err)
		return
	}
	httpresp.Created(c, dto.User(*u))
}

func (h *UsersHandler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	in := ucUser.UpdateUserInput{ID: req.ID, Name: req.Name, Password: req.Password}
	if req.Role != nil {
		role, err := domain.ParseRole(*req.Role)
		if err != nil {
			httperr.BadRequest(c, "invalid_role", domain.RoleListMessage())
			return
		}
		in.Role = &role
	}

	u, err := h.users.Update(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, "update user", err)
		return
	}
	httpresp.OK(c, dto.User(*u))
}

func (h *UsersHandler) writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		httperr.NotFound(c, "user_not_found", "Not Found")
	case errors.Is(err, domain.ErrUsersExist):
		httperr.BadRequest(c, "users_already_exist", "There already are existing users.")
	case errors.Is(err, domain.ErrNameTaken):
		httperr.BadRequest(c, "name_taken", "A user with this name already exists.")
	case errors.Is(err, domain.ErrInvalidRole):
		httperr.BadRequest(c, "invalid_role", domain.RoleListMessage())
	default:
		h.internal(c, op, err)
	}
}

func (h *UsersHandler) internal(c *gin.Context, op string, err error) {
	h.log.Error(op, zap.Error(err))
	httperr.Write(c, http.StatusInternalServerError, "internal_error", "Internal server error")
}
