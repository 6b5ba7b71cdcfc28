package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// WorkingHoursHandler mantém as exceções por dia da semana ao horário padrão
// do salão. Dia sem registro usa OpenHour/CloseHour do salão.
type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

type WorkingDayConfig struct {
	Weekday   int  `json:"weekday" binding:"min=0,max=6"`
	Active    bool `json:"active"`
	OpenHour  int  `json:"open_hour"`
	CloseHour int  `json:"close_hour"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,dive"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	salonID := middleware.SalonID(c)

	var hours []models.WorkingHours
	if err := h.db.
		Where("salon_id = ?", salonID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		httperr.Internal(c, "failed_to_get_working_hours", "Erro ao buscar horários.")
		return
	}

	c.JSON(http.StatusOK, hours)
}

// Update substitui todas as exceções do salão.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	salonID := middleware.SalonID(c)

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	seen := map[int]bool{}
	toCreate := make([]models.WorkingHours, 0, len(req.Days))
	for _, d := range req.Days {
		if seen[d.Weekday] {
			httperr.BadRequest(c, "duplicated_weekday", "Dia da semana repetido.")
			return
		}
		seen[d.Weekday] = true

		if d.Active {
			hours := domain.OperatingHours{OpenHour: d.OpenHour, CloseHour: d.CloseHour, Granularity: time.Minute}
			if err := hours.Validate(); err != nil {
				httperr.BadRequest(c, "invalid_operating_hours", "Horário de funcionamento inválido.")
				return
			}
		}

		toCreate = append(toCreate, models.WorkingHours{
			SalonID:   salonID,
			Weekday:   d.Weekday,
			Active:    d.Active,
			OpenHour:  d.OpenHour,
			CloseHour: d.CloseHour,
		})
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("salon_id = ?", salonID).Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		if len(toCreate) == 0 {
			return nil
		}
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_working_hours", "Erro ao salvar horários.")
		return
	}

	c.JSON(http.StatusOK, toCreate)
}
