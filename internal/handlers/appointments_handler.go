package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-admin/internal/dto"
	"github.com/BruksfildServices01/barber-admin/internal/httperr"
	"github.com/BruksfildServices01/barber-admin/internal/httpresp"
	"github.com/BruksfildServices01/barber-admin/internal/models"
)

type AppointmentsHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAppointmentsHandler(db *gorm.DB, log *zap.Logger) *AppointmentsHandler {
	return &AppointmentsHandler{db: db, log: log}
}

// --------- Requests ---------

type CreateAppointmentRequest struct {
	BarberID          uint      `json:"barberId" binding:"required"`
	BarberServiceID   uint      `json:"barberServiceId" binding:"required"`
	Datetime          time.Time `json:"datetime" binding:"required"`
	ClientName        string    `json:"clientName" binding:"required"`
	ClientPhoneNumber string    `json:"clientPhoneNumber" binding:"required"`
}

type UpdateAppointmentRequest struct {
	ID                uint       `json:"id" binding:"required"`
	BarberID          *uint      `json:"barberId" binding:"omitempty,min=1"`
	BarberServiceID   *uint      `json:"barberServiceId" binding:"omitempty,min=1"`
	Datetime          *time.Time `json:"datetime"`
	ClientName        *string    `json:"clientName" binding:"omitempty,min=1"`
	ClientPhoneNumber *string    `json:"clientPhoneNumber" binding:"omitempty,min=1"`
}

// --------- Handlers ---------

func (h *AppointmentsHandler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	query := h.db.WithContext(c.Request.Context()).
		Model(&models.Appointment{}).
		Select("appointments.*").
		Preload("Barber").
		Preload("BarberService")

	order := clause.OrderByColumn{Column: clause.Column{Name: "appointments.id", Raw: true}}
	switch q.SortField {
	case "barber":
		query = query.Joins("JOIN barbers ON barbers.id = appointments.barber_id")
		order = clause.OrderByColumn{Column: clause.Column{Name: "barbers.name", Raw: true}, Desc: q.Desc()}
	case "service":
		query = query.Joins("JOIN barber_services ON barber_services.id = appointments.barber_service_id")
		order = clause.OrderByColumn{Column: clause.Column{Name: "barber_services.name", Raw: true}, Desc: q.Desc()}
	case "datetime":
		order = clause.OrderByColumn{Column: clause.Column{Name: "appointments.datetime", Raw: true}, Desc: q.Desc()}
	}

	var appointments []models.Appointment
	if err := query.Order(order).Find(&appointments).Error; err != nil {
		h.log.Error("list appointments", zap.Error(err))
		httperr.Internal(c, "failed_to_list_appointments", "Internal server error")
		return
	}

	httpresp.List(c, dto.Map(appointments, dto.Appointment))
}

func (h *AppointmentsHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ap, ok := h.find(c, id)
	if !ok {
		return
	}
	httpresp.OK(c, dto.Appointment(*ap))
}

// Create books an appointment. It is reachable without authentication so that
// clients can book for themselves.
func (h *AppointmentsHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	if !h.referencesExist(c, &req.BarberID, &req.BarberServiceID) {
		return
	}

	ap := models.Appointment{
		BarberID:          req.BarberID,
		BarberServiceID:   req.BarberServiceID,
		Datetime:          req.Datetime.UTC(),
		ClientName:        req.ClientName,
		ClientPhoneNumber: req.ClientPhoneNumber,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&ap).Error; err != nil {
		h.log.Error("create appointment", zap.Error(err))
		httperr.Internal(c, "failed_to_create_appointment", "Internal server error")
		return
	}

	created, ok := h.find(c, ap.ID)
	if !ok {
		return
	}
	httpresp.Created(c, dto.Appointment(*created))
}

func (h *AppointmentsHandler) Update(c *gin.Context) {
	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.InvalidRequest(c, err)
		return
	}

	ap, ok := h.find(c, req.ID)
	if !ok {
		return
	}
	if !h.referencesExist(c, req.BarberID, req.BarberServiceID) {
		return
	}

	updates := map[string]any{}
	if req.BarberID != nil {
		updates["barber_id"] = *req.BarberID
	}
	if req.BarberServiceID != nil {
		updates["barber_service_id"] = *req.BarberServiceID
	}
	if req.Datetime != nil {
		updates["datetime"] = req.Datetime.UTC()
	}
	if req.ClientName != nil {
		updates["client_name"] = *req.ClientName
	}
	if req.ClientPhoneNumber != nil {
		updates["client_phone_number"] = *req.ClientPhoneNumber
	}

	if len(updates) > 0 {
		if err := h.db.WithContext(c.Request.Context()).
			Model(&models.Appointment{ID: ap.ID}).
			Updates(updates).Error; err != nil {
			h.log.Error("update appointment", zap.Uint("id", ap.ID), zap.Error(err))
			httperr.Internal(c, "failed_to_update_appointment", "Internal server error")
			return
		}
	}

	updated, ok := h.find(c, ap.ID)
	if !ok {
		return
	}
	httpresp.OK(c, dto.Appointment(*updated))
}

func (h *AppointmentsHandler) find(c *gin.Context, id uint) (*models.Appointment, bool) {
	var ap models.Appointment
	err := h.db.WithContext(c.Request.Context()).
		Preload("Barber").
		Preload("BarberService").
		First(&ap, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "appointment_not_found", "Not Found")
			return nil, false
		}
		h.log.Error("get appointment", zap.Uint("id", id), zap.Error(err))
		httperr.Internal(c, "failed_to_get_appointment", "Internal server error")
		return nil, false
	}
	return &ap, true
}

// referencesExist checks the barber and service an appointment points at. Nil ids
// are not checked.
func (h *AppointmentsHandler) referencesExist(c *gin.Context, barberID, serviceID *uint) bool {
	db := h.db.WithContext(c.Request.Context())

	if barberID != nil {
		var count int64
		if err := db.Model(&models.Barber{}).Where("id = ?", *barberID).Count(&count).Error; err != nil {
			h.log.Error("check barber", zap.Uint("barber_id", *barberID), zap.Error(err))
			httperr.Internal(c, "failed_to_check_barber", "Internal server error")
			return false
		}
		if count == 0 {
			httperr.BadRequest(c, "invalid_barber", "barber not found")
			return false
		}
	}

	if serviceID != nil {
		var count int64
		if err := db.Model(&models.BarberService{}).Where("id = ?", *serviceID).Count(&count).Error; err != nil {
			h.log.Error("check barber service", zap.Uint("barber_service_id", *serviceID), zap.Error(err))
			httperr.Internal(c, "failed_to_check_service", "Internal server error")
			return false
		}
		if count == 0 {
			httperr.BadRequest(c, "invalid_service", "barber service not found")
			return false
		}
	}

	return true
}
