package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

// BookingHandler é a agenda do painel do salão (rotas autenticadas).
type BookingHandler struct {
	deps booking.Deps
}

func NewBookingHandler(deps booking.Deps) *BookingHandler {
	return &BookingHandler{deps: deps}
}

// ======================================================
// REQUESTS
// ======================================================

type MoveBookingRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

type CompleteBookingRequest struct {
	PaidAmount *decimal.Decimal `json:"paid_amount"`
}

// ======================================================
// HELPERS
// ======================================================

func (h *BookingHandler) salon(c *gin.Context) (*models.Salon, bool) {
	salon, err := h.deps.Repo.GetSalon(c.Request.Context(), middleware.SalonID(c))
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return nil, false
	}
	return salon, true
}

func actor(c *gin.Context) *uint {
	id := middleware.UserID(c)
	if id == 0 {
		return nil
	}
	return &id
}

func staffError(c *gin.Context, salon *models.Salon, err error) {
	httperr.FromError(c, err, httperr.Staff, timezone.Location(salon.Timezone))
}

// ======================================================
// AGENDA (DIA / MÊS)
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	salon, ok := h.salon(c)
	if !ok {
		return
	}
	staffID, ok := uintQuery(c, "staff_id")
	if !ok {
		return
	}

	date := timezone.NowIn(salon.Timezone)
	if raw := c.Query("date"); raw != "" {
		parsed, err := parseDateInSalon(salon, raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		date = parsed
	}

	list, err := booking.NewListBookings(h.deps).ByDate(c.Request.Context(), salon.ID, staffID, date)
	if err != nil {
		staffError(c, salon, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":     date.Format(timezone.DateLayout),
		"bookings": list,
	})
}

func (h *BookingHandler) ListByMonth(c *gin.Context) {
	salon, ok := h.salon(c)
	if !ok {
		return
	}
	staffID, ok := uintQuery(c, "staff_id")
	if !ok {
		return
	}

	now := timezone.NowIn(salon.Timezone)
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	list, err := booking.NewListBookings(h.deps).ByMonth(c.Request.Context(), salon.ID, staffID, year, month)
	if err != nil {
		staffError(c, salon, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":     year,
		"month":    month,
		"bookings": list,
	})
}

func (h *BookingHandler) FreeSlots(c *gin.Context) {
	salon, ok := h.salon(c)
	if !ok {
		return
	}
	freeSlots(c, h.deps, salon, httperr.Staff)
}

// ======================================================
// CREATE / MOVE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	salon, ok := h.salon(c)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	start, err := parseDateTimeInSalon(salon, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	b, err := booking.NewCreateReservation(h.deps).Execute(c.Request.Context(), booking.ReservationInput{
		SalonID:       salon.ID,
		StaffMemberID: req.StaffMemberID,
		ServiceID:     req.ServiceID,
		Client: domain.ClientInfo{
			Name:  req.ClientName,
			Phone: req.ClientPhone,
			Email: req.ClientEmail,
		},
		Start:   start,
		Notes:   req.Notes,
		ActorID: actor(c),
	})
	if err != nil {
		staffError(c, salon, err)
		return
	}

	c.JSON(http.StatusCreated, bookingResponse(salon, b))
}

func (h *BookingHandler) Move(c *gin.Context) {
	salon, ok := h.salon(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req MoveBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	start, err := parseDateTimeInSalon(salon, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	b, err := booking.NewMoveReservation(h.deps).Execute(c.Request.Context(), booking.MoveInput{
		SalonID:   salon.ID,
		BookingID: id,
		NewStart:  start,
		ActorID:   actor(c),
	})
	if err != nil {
		staffError(c, salon, err)
		return
	}

	c.JSON(http.StatusOK, bookingResponse(salon, b))
}

// ======================================================
// STATUS
// ======================================================

func (h *BookingHandler) Confirm(c *gin.Context) {
	h.changeStatus(c, domain.StatusConfirmed)
}

func (h *BookingHandler) Start(c *gin.Context) {
	h.changeStatus(c, domain.StatusInProgress)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	h.changeStatus(c, domain.StatusCompleted)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	h.changeStatus(c, domain.StatusCancelled)
}

func (h *BookingHandler) NoShow(c *gin.Context) {
	h.changeStatus(c, domain.StatusNoShow)
}

func (h *BookingHandler) changeStatus(c *gin.Context, to domain.Status) {
	salon, ok := h.salon(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	in := booking.ChangeStatusInput{
		SalonID:   salon.ID,
		BookingID: id,
		ActorID:   actor(c),
		To:        to,
	}

	switch to {
	case domain.StatusCancelled:
		var req ReasonRequest
		_ = c.ShouldBindJSON(&req)
		in.Reason = req.Reason
	case domain.StatusCompleted:
		var req CompleteBookingRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
				return
			}
		}
		in.PaidAmount = req.PaidAmount
	}

	b, err := booking.NewChangeStatus(h.deps).Execute(c.Request.Context(), in)
	if err != nil {
		staffError(c, salon, err)
		return
	}

	c.JSON(http.StatusOK, bookingResponse(salon, b))
}
