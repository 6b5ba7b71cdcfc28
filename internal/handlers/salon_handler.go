package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type SalonHandler struct {
	db *gorm.DB
}

func NewSalonHandler(db *gorm.DB) *SalonHandler {
	return &SalonHandler{db: db}
}

type UpdateSalonConfigRequest struct {
	Timezone           *string `json:"timezone"`
	OpenHour           *int    `json:"open_hour"`
	CloseHour          *int    `json:"close_hour"`
	SlotMinutes        *int    `json:"slot_minutes"`
	DefaultDurationMin *int    `json:"default_duration_min"`
}

func (h *SalonHandler) load(c *gin.Context) (*models.Salon, bool) {
	var salon models.Salon
	if err := h.db.First(&salon, middleware.SalonID(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_salon", "Erro ao buscar dados do salão.")
		return nil, false
	}
	return &salon, true
}

func (h *SalonHandler) GetMeSalon(c *gin.Context) {
	salon, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, salon)
}

func (h *SalonHandler) UpdateMeSalon(c *gin.Context) {
	salon, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateSalonConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
			return
		}
		salon.Timezone = *req.Timezone
	}
	if req.OpenHour != nil {
		salon.OpenHour = *req.OpenHour
	}
	if req.CloseHour != nil {
		salon.CloseHour = *req.CloseHour
	}
	if req.SlotMinutes != nil {
		salon.SlotMinutes = *req.SlotMinutes
	}
	if req.DefaultDurationMin != nil {
		if *req.DefaultDurationMin <= 0 {
			httperr.BadRequest(c, "invalid_default_duration", "Duração padrão deve ser positiva (em minutos).")
			return
		}
		salon.DefaultDurationMin = *req.DefaultDurationMin
	}

	hours := domain.OperatingHours{
		OpenHour:    salon.OpenHour,
		CloseHour:   salon.CloseHour,
		Granularity: time.Duration(salon.SlotMinutes) * time.Minute,
	}
	if err := hours.Validate(); err != nil {
		httperr.BadRequest(c, "invalid_operating_hours", "Horário de funcionamento inválido.")
		return
	}

	if err := h.db.Save(salon).Error; err != nil {
		httperr.Internal(c, "failed_to_update_salon", "Erro ao salvar as configurações do salão.")
		return
	}

	c.JSON(http.StatusOK, salon)
}
