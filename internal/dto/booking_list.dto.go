package dto

import "time"

// BookingListDTO é a linha da agenda (dia/mês). Horários no fuso do salão.
type BookingListDTO struct {
	ID              uint      `json:"id"`
	StaffMemberID   uint      `json:"staff_member_id"`
	StaffName       string    `json:"staff_name"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Status          string    `json:"status"`
	ClientName      string    `json:"client_name"`
	ClientPhone     string    `json:"client_phone"`
	ServiceName     string    `json:"service_name"`
	ClientConfirmed bool      `json:"client_confirmed"`
	Notes           string    `json:"notes"`
}

type SlotDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
