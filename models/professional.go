package models

import (
	"gorm.io/gorm"
)

type Professional struct {
	gorm.Model
	SalonID uint   `json:"salon_id" gorm:"index;not null"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Active  bool   `json:"active" gorm:"default:true"`

	WorkSchedules []WorkSchedule `json:"work_schedules,omitempty" gorm:"foreignKey:ProfessionalID"`
	TimeBlocks    []TimeBlock    `json:"time_blocks,omitempty" gorm:"foreignKey:ProfessionalID"`
	Appointments  []Appointment  `json:"appointments,omitempty" gorm:"foreignKey:ProfessionalID"`
}
