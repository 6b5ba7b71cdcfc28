package notify

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type EventType string

const (
	EventBookingCreated   EventType = "booking_created"
	EventBookingConfirmed EventType = "booking_confirmed"
	EventBookingCancelled EventType = "booking_cancelled"
	EventBookingMoved     EventType = "booking_moved"
	EventBookingNoShow    EventType = "booking_no_show"
	EventBookingReminder  EventType = "booking_reminder"
)

// Event é o payload entregue ao salão (canal em tempo real) e ao cliente (email).
// Campos marcados com "-" não vão para o canal do salão.
type Event struct {
	Type          EventType `json:"type"`
	SalonID       uint      `json:"salon_id"`
	SalonName     string    `json:"salon_name"`
	SalonSlug     string    `json:"-"`
	BookingID     uint      `json:"booking_id"`
	StaffMemberID uint      `json:"staff_member_id"`
	StaffName     string    `json:"staff_name"`
	ServiceName   string    `json:"service_name"`
	Start         time.Time `json:"start"`
	ClientName    string    `json:"client_name"`
	ClientEmail   string    `json:"-"`
	Token         string    `json:"-"`
	Message       string    `json:"message"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// BookingEvent monta o evento a partir de um agendamento com Client, Service e
// StaffMember carregados.
func BookingEvent(t EventType, salon *models.Salon, b *models.Booking, now time.Time) Event {
	loc := timezone.Location(salon.Timezone)
	start := b.StartTime.In(loc)

	ev := Event{
		Type:          t,
		SalonID:       salon.ID,
		SalonName:     salon.Name,
		SalonSlug:     salon.Slug,
		BookingID:     b.ID,
		StaffMemberID: b.StaffMemberID,
		StaffName:     b.StaffMember.Name,
		ServiceName:   b.Service.Name,
		Start:         start,
		ClientName:    b.Client.Name,
		ClientEmail:   b.Client.Email,
		OccurredAt:    now,
	}
	if b.ConfirmationToken != nil {
		ev.Token = *b.ConfirmationToken
	}
	ev.Message = tenantMessage(ev)
	return ev
}

func tenantMessage(ev Event) string {
	when := ev.Start.Format("02/01 15:04")
	switch ev.Type {
	case EventBookingCreated:
		return fmt.Sprintf("Novo agendamento: %s - %s em %s com %s.", ev.ClientName, ev.ServiceName, when, ev.StaffName)
	case EventBookingConfirmed:
		return fmt.Sprintf("%s confirmou o agendamento de %s.", ev.ClientName, when)
	case EventBookingCancelled:
		return fmt.Sprintf("Agendamento de %s em %s foi cancelado.", ev.ClientName, when)
	case EventBookingMoved:
		return fmt.Sprintf("Agendamento de %s remarcado para %s.", ev.ClientName, when)
	case EventBookingNoShow:
		return fmt.Sprintf("%s não compareceu ao agendamento de %s.", ev.ClientName, when)
	case EventBookingReminder:
		return fmt.Sprintf("Lembrete: %s com %s em %s.", ev.ServiceName, ev.ClientName, when)
	default:
		return string(ev.Type)
	}
}
