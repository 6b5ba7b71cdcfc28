package models

import "time"

// Salon é o tenant (comerciante). Todo agendamento pertence a um salão.
type Salon struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Slug     string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone    string `gorm:"size:20" json:"phone"`
	Address  string `gorm:"size:255" json:"address"`
	Timezone string `gorm:"size:64;default:'America/Sao_Paulo'" json:"timezone"`

	// Horário de funcionamento usado pelo gerador de slots.
	OpenHour           int  `gorm:"default:8" json:"open_hour"`
	CloseHour          int  `gorm:"default:18" json:"close_hour"`
	SlotMinutes        int  `gorm:"default:30" json:"slot_minutes"`
	DefaultDurationMin int  `gorm:"default:30" json:"default_duration_min"`
	Active             bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
