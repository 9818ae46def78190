package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-admin/internal/dto"
	"github.com/BruksfildServices01/barber-admin/internal/httperr"
	"github.com/BruksfildServices01/barber-admin/internal/httpresp"
	"github.com/BruksfildServices01/barber-admin/internal/models"
)

type BarberServicesHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewBarberServicesHandler(db *gorm.DB, log *zap.Logger) *BarberServicesHandler {
	return &BarberServicesHandler{db: db, log: log}
}

// --------- Requests ---------

type CreateBarberServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Price       string `json:"price" binding:"required,price"`
	Description string `json:"description" binding:"required"`
}

type UpdateBarberServiceRequest struct {
	ID          uint    `json:"id" binding:"required"`
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Price       *string `json:"price" binding:"omitempty,price"`
	Description *string `json:"description" binding:"omitempty,min=1"`
}

var barberServiceSortColumns = map[string]string{
	"name":        "name",
	"price":       "price",
	"description": "description",
}

// --------- Handlers ---------

func (h *BarberServicesHandler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	var services []models.BarberService
	if err := h.db.WithContext(c.Request.Context()).
		Order(q.orderBy(barberServiceSortColumns, "id")).
		Find(&services).Error; err != nil {
		h.log.Error("list barber services", zap.Error(err))
		httperr.Internal(c, "failed_to_list_services", "Internal server error")
		return
	}

	httpresp.List(c, dto.Map(services, dto.BarberService))
}

func (h *BarberServicesHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	svc, ok := h.find(c, id)
	if !ok {
		return
	}
	httpresp.OK(c, dto.BarberService(*svc))
}

func (h *BarberServicesHandler) Create(c *gin.Context) {
	var req CreateBarberServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	svc := models.BarberService{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&svc).Error; err != nil {
		h.log.Error("create barber service", zap.Error(err))
		httperr.Internal(c, "failed_to_create_service", "Internal server error")
		return
	}

	httpresp.Created(c, dto.BarberService(svc))
}

func (h *BarberServicesHandler) Update(c *gin.Context) {
	var req UpdateBarberServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	svc, ok := h.find(c, req.ID)
	if !ok {
		return
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}

	if err := h.db.WithContext(c.Request.Context()).Save(svc).Error; err != nil {
		h.log.Error("update barber service", zap.Uint("id", svc.ID), zap.Error(err))
		httperr.Internal(c, "failed_to_update_service", "Internal server error")
		return
	}

	httpresp.OK(c, dto.BarberService(*svc))
}

func (h *BarberServicesHandler) find(c *gin.Context, id uint) (*models.BarberService, bool) {
	var svc models.BarberService
	if err := h.db.WithContext(c.Request.Context()).First(&svc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Not Found")
			return nil, false
		}
		h.log.Error("get barber service", zap.Uint("id", id), zap.Error(err))
		httperr.Internal(c, "failed_to_get_service", "Internal server error")
		return nil, false
	}
	return &svc, true
}
