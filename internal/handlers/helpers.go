package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
)

// --------------------------------------------------
// Datas sempre no fuso do salão
// --------------------------------------------------

func parseDateInSalon(salon *models.Salon, dateStr string) (time.Time, error) {
	return timezone.ParseDate(salon.Timezone, dateStr)
}

func parseDateTimeInSalon(salon *models.Salon, dateStr, timeStr string) (time.Time, error) {
	return timezone.ParseDateTime(salon.Timezone, dateStr, timeStr)
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Identificador inválido.")
		return 0, false
	}
	return uint(v), true
}

// uintQuery devolve 0 quando ausente.
func uintQuery(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_"+name, "Parâmetro inválido.")
		return 0, false
	}
	return uint(v), true
}

func slotsResponse(salon *models.Salon, res *booking.FreeSlotsResult) gin.H {
	loc := timezone.Location(salon.Timezone)
	slots := make([]dto.SlotDTO, 0, len(res.Slots))
	for _, s := range res.Slots {
		slots = append(slots, dto.SlotDTO{
			Start: s.In(loc).Format("15:04"),
			End:   s.Add(res.Duration).In(loc).Format("15:04"),
		})
	}
	return gin.H{
		"date":         res.Date.In(loc).Format(timezone.DateLayout),
		"duration_min": int(res.Duration.Minutes()),
		"slots":        slots,
	}
}

// --------------------------------------------------
// Requests compartilhados
// --------------------------------------------------

type CreateBookingRequest struct {
	ClientName    string `json:"client_name"`
	ClientPhone   string `json:"client_phone"`
	ClientEmail   string `json:"client_email"`
	ServiceID     uint   `json:"service_id"`
	StaffMemberID uint   `json:"staff_member_id"`
	Date          string `json:"date" binding:"required"` // YYYY-MM-DD
	Time          string `json:"time" binding:"required"` // HH:mm
	Notes         string `json:"notes"`
}

type ReasonRequest struct {
	Reason string `json:"reason"`
}

type BookingResponse struct {
	ID            uint      `json:"id"`
	Status        string    `json:"status"`
	StaffMemberID uint      `json:"staff_member_id"`
	StaffName     string    `json:"staff_name,omitempty"`
	ServiceID     uint      `json:"service_id"`
	ServiceName   string    `json:"service_name,omitempty"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Notes         string    `json:"notes,omitempty"`
}

func bookingResponse(salon *models.Salon, b *models.Booking) BookingResponse {
	loc := timezone.Location(salon.Timezone)
	return BookingResponse{
		ID:            b.ID,
		Status:        b.Status,
		StaffMemberID: b.StaffMemberID,
		StaffName:     b.StaffMember.Name,
		ServiceID:     b.ServiceID,
		ServiceName:   b.Service.Name,
		StartTime:     b.StartTime.In(loc),
		EndTime:       b.EndTime().In(loc),
		Notes:         b.Notes,
	}
}
