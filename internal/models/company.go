package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CompanyStatusActive    = "Active"
	CompanyStatusSuspended = "Suspended"
	CompanyStatusTrial     = "Trial"
)

// Company is the tenant record; Slug is the company id carried by every other row.
type Company struct {
	ID                  string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name                string     `gorm:"not null" json:"name"`
	Slug                string     `gorm:"type:varchar(64);not null;uniqueIndex" json:"slug"`
	Status              string     `gorm:"type:varchar(20);not null;default:'Trial';index" json:"status"`
	SubscriptionEndDate *time.Time `json:"subscription_end_date"`
	CreatedAt           time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Company) TableName() string {
	return "companies"
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func IsValidCompanyStatus(s string) bool {
	return s == CompanyStatusActive || s == CompanyStatusSuspended || s == CompanyStatusTrial
}

func (c *Company) IsSuspended() bool {
	return c.Status == CompanyStatusSuspended
}

const DefaultCompanyName = "MVC"

type CompanySettings struct {
	ID          uint      `gorm:"primarykey" json:"-"`
	CompanyID   string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"-"`
	CompanyName string    `gorm:"not null;default:'MVC'" json:"company_name"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (CompanySettings) TableName() string {
	return "company_settings"
}
