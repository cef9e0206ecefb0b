package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleManager    = "manager"
	RoleEmployee   = "employee"
	RoleSuperAdmin = "super-admin"
)

type User struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CompanyID    string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_user_company_username" json:"company_id"`
	Username     string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_user_company_username" json:"username"`
	Email        *string   `json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`
	EmployeeID   *string   `gorm:"type:varchar(36);index" json:"employee_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName задает имя таблицы в БД
func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// IsManager is true for managers and the landlord account.
func (u *User) IsManager() bool {
	return IsManagerRole(u.Role)
}

func IsManagerRole(role string) bool {
	return role == RoleManager || role == RoleSuperAdmin
}
