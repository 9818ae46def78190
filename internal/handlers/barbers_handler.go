package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-admin/internal/dto"
	"github.com/BruksfildServices01/barber-admin/internal/httperr"
	"github.com/BruksfildServices01/barber-admin/internal/httpresp"
	"github.com/BruksfildServices01/barber-admin/internal/models"
)

type BarbersHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewBarbersHandler(db *gorm.DB, log *zap.Logger) *BarbersHandler {
	return &BarbersHandler{db: db, log: log}
}

// --------- Requests ---------

type ListBarbersQuery struct {
	ListQuery
	IncludeDeleted string `form:"includeDeleted"`
}

type CreateBarberRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Picture     *string `json:"picture" binding:"omitempty,min=1"`
}

type UpdateBarberRequest struct {
	ID          uint               `json:"id" binding:"required"`
	Name        *string            `json:"name" binding:"omitempty,min=1"`
	Description *string            `json:"description" binding:"omitempty,min=1"`
	Picture     dto.NullableString `json:"picture"`
}

type DeleteBarberRequest struct {
	ID uint `json:"id" binding:"required"`
}

var barberSortColumns = map[string]string{
	"name":        "name",
	"description": "description",
}

// --------- Handlers ---------

func (h *BarbersHandler) List(c *gin.Context) {
	var q ListBarbersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	query := h.db.WithContext(c.Request.Context())
	if q.IncludeDeleted != "true" {
		query = query.Where("deleted_at IS NULL")
	}

	var barbers []models.Barber
	if err := query.
		Order(q.orderBy(barberSortColumns, "id")).
		Find(&barbers).Error; err != nil {
		h.log.Error("list barbers", zap.Error(err))
		httperr.Internal(c, "failed_to_list_barbers", "Internal server error")
		return
	}

	httpresp.List(c, dto.Map(barbers, dto.Barber))
}

func (h *BarbersHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	barber, ok := h.find(c, id)
	if !ok {
		return
	}
	httpresp.OK(c, dto.Barber(*barber))
}

func (h *BarbersHandler) Create(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	barber := models.Barber{
		Name:        req.Name,
		Description: req.Description,
		Picture:     req.Picture,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&barber).Error; err != nil {
		h.log.Error("create barber", zap.Error(err))
		httperr.Internal(c, "failed_to_create_barber", "Internal server error")
		return
	}

	httpresp.Created(c, dto.Barber(barber))
}

func (h *BarbersHandler) Update(c *gin.Context) {
	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}
	if req.Picture.Value != nil && *req.Picture.Value == "" {
		httperr.BadRequest(c, "invalid_request", "picture should not be empty")
		return
	}

	barber, ok := h.find(c, req.ID)
	if !ok {
		return
	}

	if req.Name != nil {
		barber.Name = *req.Name
	}
	if req.Description != nil {
		barber.Description = *req.Description
	}
	if req.Picture.Set {
		barber.Picture = req.Picture.Value
	}

	if err := h.db.WithContext(c.Request.Context()).Save(barber).Error; err != nil {
		h.log.Error("update barber", zap.Uint("id", barber.ID), zap.Error(err))
		httperr.Internal(c, "failed_to_update_barber", "Internal server error")
		return
	}

	httpresp.OK(c, dto.Barber(*barber))
}

// Delete marks the barber as deleted. The row and its appointments stay.
func (h *BarbersHandler) Delete(c *gin.Context) {
	var req DeleteBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	barber, ok := h.find(c, req.ID)
	if !ok {
		return
	}

	now := time.Now().UTC()
	barber.DeletedAt = &now
	if err := h.db.WithContext(c.Request.Context()).
		Model(barber).
		Update("deleted_at", now).Error; err != nil {
		h.log.Error("delete barber", zap.Uint("id", barber.ID), zap.Error(err))
		httperr.Internal(c, "failed_to_delete_barber", "Internal server error")
		return
	}

	c.JSON(http.StatusOK, dto.Barber(*barber))
}

func (h *BarbersHandler) find(c *gin.Context, id uint) (*models.Barber, bool) {
	var barber models.Barber
	if err := h.db.WithContext(c.Request.Context()).First(&barber, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "barber_not_found", "Not Found")
			return nil, false
		}
		h.log.Error("get barber", zap.Uint("id", id), zap.Error(err))
		httperr.Internal(c, "failed_to_get_barber", "Internal server error")
		return nil, false
	}
	return &barber, true
}
