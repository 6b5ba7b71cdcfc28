package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SalonID uint  `gorm:"index" json:"salon_id"`
	Salon   Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client"`

	StaffMemberID uint        `gorm:"index:idx_bookings_staff_start,priority:1" json:"staff_member_id"`
	StaffMember   StaffMember `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"staff_member"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	// Sempre gravado em UTC. O fim é derivado da duração do serviço.
	StartTime time.Time `gorm:"not null;index:idx_bookings_staff_start,priority:2" json:"start_time"`

	Status string `gorm:"size:20;default:'scheduled';index" json:"status"`

	ConfirmationToken *string `gorm:"size:64;uniqueIndex" json:"-"`
	ReminderSent      bool    `gorm:"default:false" json:"reminder_sent"`
	ClientConfirmed   bool    `gorm:"default:false" json:"client_confirmed"`

	Notes      string              `gorm:"type:text" json:"notes"`
	PaidAmount decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"paid_amount"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EndTime exige Service carregado.
func (b *Booking) EndTime() time.Time {
	return b.StartTime.Add(b.Service.Duration())
}
