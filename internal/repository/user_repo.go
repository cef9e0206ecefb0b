package repository

import (
	"context"
	"errors"

	"time-clock/internal/config"
	"time-clock/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, companyID, id string) (*models.User, error)
	GetManager(ctx context.Context, companyID, username string) (*models.User, error)
	GetEmployeeUser(ctx context.Context, companyID, employeeID string) (*models.User, error)
	UpdateUsernameForEmployee(ctx context.Context, companyID, employeeID, username string) error
	UpdatePasswordForEmployee(ctx context.Context, companyID, employeeID, passwordHash string) error
	ExistsByUsernameOrEmail(ctx context.Context, companyID, username, email string) (bool, error)
}

type GormUserRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormUserRepository(db *gorm.DB) (*GormUserRepository, error) {
	logger := config.NewLogger()

	// Автомиграция - создает таблицы если их нет
	if err := db.AutoMigrate(&models.User{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate users table")
		return nil, err
	}

	return &GormUserRepository{db: db, logger: logger}, nil
}

func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	result := r.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create user")
		return translate(result.Error)
	}

	r.logger.WithFields(logrus.Fields{
		"id":         user.ID,
		"company_id": user.CompanyID,
		"role":       user.Role,
	}).Info("User created")
	return nil
}

func (r *GormUserRepository) GetByID(ctx context.Context, companyID, id string) (*models.User, error) {
	return r.first(r.db.WithContext(ctx).Where("company_id = ? AND id = ?", companyID, id))
}

// GetManager ищет менеджера (или super-admin) по логину
func (r *GormUserRepository) GetManager(ctx context.Context, companyID, username string) (*models.User, error) {
	return r.first(r.db.WithContext(ctx).
		Where("company_id = ? AND username = ? AND role IN ?", companyID, username,
			[]string{models.RoleManager, models.RoleSuperAdmin}))
}

func (r *GormUserRepository) GetEmployeeUser(ctx context.Context, companyID, employeeID string) (*models.User, error) {
	return r.first(r.db.WithContext(ctx).
		Where("company_id = ? AND employee_id = ? AND role = ?", companyID, employeeID, models.RoleEmployee))
}

func (r *GormUserRepository) first(query *gorm.DB) (*models.User, error) {
	var user models.User
	result := query.First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		return nil, result.Error
	}

	return &user, nil
}

func (r *GormUserRepository) UpdateUsernameForEmployee(ctx context.Context, companyID, employeeID, username string) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("company_id = ? AND employee_id = ? AND role = ?", companyID, employeeID, models.RoleEmployee).
		Update("username", username)

	if result.Error != nil {
		return translate(result.Error)
	}

	return nil
}

func (r *GormUserRepository) UpdatePasswordForEmployee(ctx context.Context, companyID, employeeID, passwordHash string) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("company_id = ? AND employee_id = ? AND role = ?", companyID, employeeID, models.RoleEmployee).
		Update("password_hash", passwordHash)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *GormUserRepository) ExistsByUsernameOrEmail(ctx context.Context, companyID, username, email string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("company_id = ? AND (username = ? OR email = ?)", companyID, username, email).
		Count(&count)

	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}
