package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID             string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CompanyID      string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_employee_company_number" json:"-"`
	Name           string    `gorm:"not null" json:"name"`
	EmployeeNumber string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_employee_company_number" json:"employee_number"`
	Email          *string   `json:"email"`
	Phone          *string   `json:"phone"`
	Active         bool      `gorm:"not null;default:true;index" json:"active"`
	TelegramChatID *int64    `gorm:"uniqueIndex" json:"telegram_chat_id,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// Статусы для фильтра списка сотрудников
const (
	EmployeeStatusActive   = "active"
	EmployeeStatusInactive = "inactive"
	EmployeeStatusAll      = "all"
)

// NormalizeEmployeeStatus falls back to active for anything unknown.
func NormalizeEmployeeStatus(s string) string {
	switch s {
	case EmployeeStatusActive, EmployeeStatusInactive, EmployeeStatusAll:
		return s
	}
	return EmployeeStatusActive
}
