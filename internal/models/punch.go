package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PunchType string

// lunch_out is leaving for lunch, lunch_in is coming back from it.
const (
	PunchClockIn  PunchType = "clock_in"
	PunchClockOut PunchType = "clock_out"
	PunchLunchOut PunchType = "lunch_out"
	PunchLunchIn  PunchType = "lunch_in"
)

// PunchTypes in the order a normal day goes through them.
var PunchTypes = []PunchType{PunchClockIn, PunchLunchOut, PunchLunchIn, PunchClockOut}

// ParsePunchType проверяет тип отметки
func ParsePunchType(s string) (PunchType, error) {
	t := PunchType(strings.TrimSpace(s))
	if !t.IsValid() {
		return "", fmt.Errorf("invalid punch type %q", s)
	}
	return t, nil
}

func (t PunchType) IsValid() bool {
	switch t {
	case PunchClockIn, PunchClockOut, PunchLunchOut, PunchLunchIn:
		return true
	}
	return false
}

// Label is the human name used in messages and buttons.
func (t PunchType) Label() string {
	switch t {
	case PunchClockIn:
		return "Clock in"
	case PunchClockOut:
		return "Clock out"
	case PunchLunchOut:
		return "Lunch out"
	case PunchLunchIn:
		return "Lunch in"
	}
	return string(t)
}

type Punch struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CompanyID    string    `gorm:"type:varchar(64);not null;index" json:"-"`
	EmployeeID   string    `gorm:"type:varchar(36);not null;index" json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	PunchType    PunchType `gorm:"type:varchar(20);not null;index" json:"punch_type"`
	PunchTime    time.Time `gorm:"not null;index" json:"punch_time"`
	Notes        *string   `json:"notes"`
	CreatedBy    *string   `gorm:"type:varchar(36)" json:"created_by"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"-"`
}

func (Punch) TableName() string {
	return "punches"
}

func (p *Punch) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	// stored in UTC so range filters compare correctly on sqlite
	p.PunchTime = p.PunchTime.UTC()
	return nil
}

// IsValid проверяет валидность данных
func (p *Punch) IsValid() bool {
	if p.CompanyID == "" || p.EmployeeID == "" {
		return false
	}
	if !p.PunchType.IsValid() {
		return false
	}
	return !p.PunchTime.IsZero()
}
