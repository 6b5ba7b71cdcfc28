package models

import "time"

// WorkingHours sobrescreve o horário padrão do salão em um dia da semana.
// Sem registro para o dia, vale Salon.OpenHour/CloseHour.
type WorkingHours struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"uniqueIndex:idx_working_hours_salon_weekday" json:"salon_id"`

	Weekday int `gorm:"uniqueIndex:idx_working_hours_salon_weekday" json:"weekday"`

	OpenHour  int  `json:"open_hour"`
	CloseHour int  `json:"close_hour"`
	Active    bool `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
