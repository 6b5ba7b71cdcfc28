package notify

import (
	"fmt"
	"strings"
)

// LinkBuilder monta os links públicos de confirmação/cancelamento.
type LinkBuilder struct {
	BaseURL string
}

func (l LinkBuilder) ConfirmURL(slug, token string) string {
	return fmt.Sprintf("%s/p/%s/bookings/%s/confirm", strings.TrimRight(l.BaseURL, "/"), slug, token)
}

func (l LinkBuilder) CancelURL(slug, token string) string {
	return fmt.Sprintf("%s/p/%s/bookings/%s/cancel", strings.TrimRight(l.BaseURL, "/"), slug, token)
}

// ClientEmail devolve false para eventos que não geram email ao cliente.
func ClientEmail(ev Event, links LinkBuilder) (EmailMessage, bool) {
	when := ev.Start.Format("02/01/2006 às 15:04")

	var subject string
	var b strings.Builder

	fmt.Fprintf(&b, "Olá, %s!\n\n", ev.ClientName)

	switch ev.Type {
	case EventBookingCreated:
		subject = fmt.Sprintf("Agendamento recebido - %s", ev.SalonName)
		fmt.Fprintf(&b, "Seu agendamento de %s com %s está marcado para %s.\n", ev.ServiceName, ev.StaffName, when)
	case EventBookingReminder:
		subject = fmt.Sprintf("Lembrete: seu horário em %s", ev.SalonName)
		fmt.Fprintf(&b, "Lembrete: %s com %s em %s.\n", ev.ServiceName, ev.StaffName, when)
	case EventBookingMoved:
		subject = fmt.Sprintf("Agendamento remarcado - %s", ev.SalonName)
		fmt.Fprintf(&b, "Seu agendamento de %s foi remarcado para %s.\n", ev.ServiceName, when)
	default:
		return EmailMessage{}, false
	}

	if ev.Token != "" && ev.SalonSlug != "" {
		fmt.Fprintf(&b, "\nConfirmar: %s\n", links.ConfirmURL(ev.SalonSlug, ev.Token))
		fmt.Fprintf(&b, "Cancelar: %s\n", links.CancelURL(ev.SalonSlug, ev.Token))
	}

	return EmailMessage{
		To:      ev.ClientEmail,
		ToName:  ev.ClientName,
		Subject: subject,
		Body:    b.String(),
	}, true
}
