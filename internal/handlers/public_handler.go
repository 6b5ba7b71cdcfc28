package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler atende a página de agendamento do salão (sem login).
type PublicHandler struct {
	deps booking.Deps
}

func NewPublicHandler(deps booking.Deps) *PublicHandler {
	return &PublicHandler{deps: deps}
}

const ctxPublicSalon = "publicSalon"

// ResolveSalon carrega o salão ativo do slug para as rotas públicas.
func (h *PublicHandler) ResolveSalon(c *gin.Context) {
	salon, err := h.deps.Repo.GetSalonBySlug(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, domain.ErrNotFound) {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		c.Abort()
		return
	}
	if err != nil {
		httperr.FromError(c, domain.Infra("get_salon", err), httperr.Public, nil)
		c.Abort()
		return
	}
	c.Set(ctxPublicSalon, salon)
	c.Next()
}

func publicSalon(c *gin.Context) *models.Salon {
	return c.MustGet(ctxPublicSalon).(*models.Salon)
}

////////////////////////////////////////////////////////
// CATALOGUE
////////////////////////////////////////////////////////

func (h *PublicHandler) Salon(c *gin.Context) {
	salon := publicSalon(c)
	c.JSON(http.StatusOK, gin.H{
		"name":       salon.Name,
		"slug":       salon.Slug,
		"phone":      salon.Phone,
		"address":    salon.Address,
		"timezone":   salon.Timezone,
		"open_hour":  salon.OpenHour,
		"close_hour": salon.CloseHour,
	})
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	salon := publicSalon(c)

	services, err := h.deps.Repo.ListServices(c.Request.Context(), salon.ID)
	if err != nil {
		httperr.FromError(c, domain.Infra("list_services", err), httperr.Public, nil)
		return
	}

	httpresp.List(c, services)
}

func (h *PublicHandler) ListStaffForService(c *gin.Context) {
	salon := publicSalon(c)
	serviceID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	staff, err := h.deps.Repo.ListStaffForService(c.Request.Context(), salon.ID, serviceID)
	if errors.Is(err, domain.ErrNotFound) {
		httperr.FromError(c, domain.NotFound("service"), httperr.Public, nil)
		return
	}
	if err != nil {
		httperr.FromError(c, domain.Infra("list_staff", err), httperr.Public, nil)
		return
	}

	out := make([]gin.H, 0, len(staff))
	for _, s := range staff {
		out = append(out, gin.H{"id": s.ID, "name": s.Name})
	}
	c.JSON(http.StatusOK, gin.H{"staff": out})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) FreeSlots(c *gin.Context) {
	freeSlots(c, h.deps, publicSalon(c), httperr.Public)
}

// freeSlots é compartilhado com o painel.
func freeSlots(c *gin.Context, deps booking.Deps, salon *models.Salon, audience httperr.Audience) {
	staffID, ok := uintParam(c, "staffId")
	if !ok {
		return
	}
	serviceID, ok := uintQuery(c, "service_id")
	if !ok {
		return
	}
	duration, ok := uintQuery(c, "duration")
	if !ok {
		return
	}

	date, err := parseDateInSalon(salon, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	res, err := booking.NewGetFreeSlots(deps).Execute(c.Request.Context(), booking.FreeSlotsInput{
		SalonID:       salon.ID,
		StaffMemberID: staffID,
		ServiceID:     serviceID,
		Date:          date,
		DurationMin:   int(duration),
	})
	if err != nil {
		httperr.FromError(c, err, audience, timezone.Location(salon.Timezone))
		return
	}

	c.JSON(http.StatusOK, slotsResponse(salon, res))
}

////////////////////////////////////////////////////////
// CREATE
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	salon := publicSalon(c)

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
		Start: start,
		Notes: req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err, httperr.Public, nil)
		return
	}

	// o token volta para quem agendou; os links também vão por email
	resp := struct {
		BookingResponse
		Token string `json:"token"`
	}{BookingResponse: bookingResponse(salon, b)}
	if b.ConfirmationToken != nil {
		resp.Token = *b.ConfirmationToken
	}

	c.JSON(http.StatusCreated, resp)
}

////////////////////////////////////////////////////////
// CONFIRM / CANCEL BY TOKEN
////////////////////////////////////////////////////////

func (h *PublicHandler) ConfirmBooking(c *gin.Context) {
	salon := publicSalon(c)

	b, err := booking.NewConfirmByToken(h.deps).Execute(c.Request.Context(), salon.ID, c.Param("token"))
	if err != nil {
		httperr.FromError(c, err, httperr.Public, nil)
		return
	}

	c.JSON(http.StatusOK, bookingResponse(salon, b))
}

func (h *PublicHandler) CancelBooking(c *gin.Context) {
	salon := publicSalon(c)

	var req ReasonRequest
	// corpo opcional
	_ = c.ShouldBindJSON(&req)

	b, err := booking.NewCancelByToken(h.deps).Execute(c.Request.Context(), salon.ID, c.Param("token"), req.Reason)
	if err != nil {
		httperr.FromError(c, err, httperr.Public, nil)
		return
	}

	c.JSON(http.StatusOK, bookingResponse(salon, b))
}
