package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Service struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"size:255" json:"description"`
	DurationMin int             `gorm:"not null" json:"duration_min"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2)" json:"price"`
	Active      bool            `gorm:"default:true" json:"active"`

	// Vazio = qualquer funcionário ativo do salão pode executar.
	Staff []StaffMember `gorm:"many2many:service_staff;" json:"staff,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMin) * time.Minute
}

// Performs informa se o funcionário está habilitado para o serviço.
// Staff precisa estar carregado (Preload).
func (s *Service) Performs(staffID uint) bool {
	if len(s.Staff) == 0 {
		return true
	}
	for _, st := range s.Staff {
		if st.ID == staffID {
			return true
		}
	}
	return false
}
