package service

import (
	"context"
	"errors"
	"strings"

	"time-clock/internal/config"
	"time-clock/internal/models"
	"time-clock/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const MinPasswordLength = 6

type EmployeeInput struct {
	Name           string  `json:"name" label:"Name" validate:"required,max=200"`
	EmployeeNumber string  `json:"employee_number" label:"Employee number" validate:"required,max=64"`
	Email          *string `json:"email" label:"Email" validate:"omitempty,max=200"`
	Phone          *string `json:"phone" label:"Phone" validate:"omitempty,max=50"`
	Active         *bool   `json:"active"`
}

// PublicEmployee is what the login screen may see.
type PublicEmployee struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	EmployeeNumber string `json:"employee_number"`
}

type CreatedEmployee struct {
	ID           string `json:"id"`
	TempPassword string `json:"temp_password"`
}

type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
	userRepo     repository.UserRepository
	logger       *logrus.Logger
}

func NewEmployeeService(employeeRepo repository.EmployeeRepository, userRepo repository.UserRepository) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
		logger:       config.NewLogger(),
	}
}

// ListPublic returns active employees of a company for the login dropdown.
func (s *EmployeeService) ListPublic(ctx context.Context, companyID string) ([]PublicEmployee, error) {
	companyID = strings.TrimSpace(companyID)
	if companyID == "" {
		return nil, validationErr("companyId is required")
	}

	employees, err := s.employeeRepo.List(ctx, companyID, models.EmployeeStatusActive)
	if err != nil {
		return nil, err
	}

	out := make([]PublicEmployee, 0, len(employees))
	for _, e := range employees {
		out = append(out, PublicEmployee{ID: e.ID, Name: e.Name, EmployeeNumber: e.EmployeeNumber})
	}
	return out, nil
}

// List returns the company's employees; an employee only sees themself.
func (s *EmployeeService) List(ctx context.Context, actor Actor, status string) ([]models.Employee, error) {
	if !actor.IsManager() {
		if actor.EmployeeID == "" {
			return []models.Employee{}, nil
		}
		employee, err := s.employeeRepo.GetActiveByID(ctx, actor.CompanyID, actor.EmployeeID)
		if err != nil {
			return nil, err
		}
		if employee == nil {
			return []models.Employee{}, nil
		}
		return []models.Employee{*employee}, nil
	}

	employees, err := s.employeeRepo.List(ctx, actor.CompanyID, models.NormalizeEmployeeStatus(strings.ToLower(status)))
	if err != nil {
		return nil, err
	}
	if employees == nil {
		employees = []models.Employee{}
	}
	return employees, nil
}

func (s *EmployeeService) Get(ctx context.Context, actor Actor, id string) (*models.Employee, error) {
	if !actor.IsManager() && actor.EmployeeID != id {
		return nil, forbiddenErr("Manager access required")
	}
	employee, err := s.employeeRepo.GetByID(ctx, actor.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, notFoundErr("Employee not found")
	}
	return employee, nil
}

// Create adds an employee and its login (username = employee number) with a
// temporary password that is returned only here.
func (s *EmployeeService) Create(ctx context.Context, actor Actor, in EmployeeInput) (*CreatedEmployee, error) {
	if !actor.IsManager() {
		return nil, forbiddenErr("Manager access required")
	}

	name, number := strings.TrimSpace(in.Name), strings.TrimSpace(in.EmployeeNumber)
	if name == "" || number == "" {
		return nil, validationErr("Name and employee number are required")
	}

	taken, err := s.userRepo.ExistsByUsernameOrEmail(ctx, actor.CompanyID, number, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, conflictErr("Employee number already exists")
	}

	employee := &models.Employee{
		CompanyID:      actor.CompanyID,
		Name:           name,
		EmployeeNumber: number,
		Email:          trimmed(in.Email),
		Phone:          trimmed(in.Phone),
		Active:         true,
	}
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflictErr("Employee number already exists")
		}
		return nil, err
	}

	tempPassword := newTempPassword()
	hash, err := HashPassword(tempPassword)
	if err != nil {
		return nil, err
	}

	employeeID := employee.ID
	user := &models.User{
		CompanyID:    actor.CompanyID,
		Username:     number,
		PasswordHash: hash,
		Role:         models.RoleEmployee,
		EmployeeID:   &employeeID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.WithError(err).WithField("employee_id", employee.ID).Error("Employee created without login")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"company_id":  actor.CompanyID,
		"employee_id": employee.ID,
		"by":          actor.Username,
	}).Info("Employee created")

	return &CreatedEmployee{ID: employee.ID, TempPassword: tempPassword}, nil
}

func (s *EmployeeService) Update(ctx context.Context, actor Actor, id string, in EmployeeInput) error {
	if !actor.IsManager() {
		return forbiddenErr("Manager access required")
	}

	name, number := strings.TrimSpace(in.Name), strings.TrimSpace(in.EmployeeNumber)
	if name == "" || number == "" {
		return validationErr("Name and employee number are required")
	}

	employee, err := s.employeeRepo.GetByID(ctx, actor.CompanyID, id)
	if err != nil {
		return err
	}
	if employee == nil {
		return notFoundErr("Employee not found")
	}

	oldNumber := employee.EmployeeNumber
	employee.Name = name
	employee.EmployeeNumber = number
	employee.Email = trimmed(in.Email)
	employee.Phone = trimmed(in.Phone)
	if in.Active != nil {
		employee.Active = *in.Active
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return conflictErr("Employee number already exists")
		}
		return err
	}

	// логин сотрудника = табельный номер
	if oldNumber != number {
		if err := s.userRepo.UpdateUsernameForEmployee(ctx, actor.CompanyID, employee.ID, number); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return conflictErr("Employee number already exists")
			}
			return err
		}
	}

	s.logger.WithFields(logrus.Fields{
		"employee_id": employee.ID,
		"active":      employee.Active,
	}).Info("Employee updated")
	return nil
}

func (s *EmployeeService) SetPassword(ctx context.Context, actor Actor, id, password string) error {
	if !actor.IsManager() {
		return forbiddenErr("Manager access required")
	}
	if strings.TrimSpace(password) == "" {
		return validationErr("Password is required")
	}
	if len(password) < MinPasswordLength {
		return validationErr("Password must be at least %d characters", MinPasswordLength)
	}

	employee, err := s.employeeRepo.GetByID(ctx, actor.CompanyID, id)
	if err != nil {
		return err
	}
	if employee == nil {
		return notFoundErr("Employee not found")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	err = s.userRepo.UpdatePasswordForEmployee(ctx, actor.CompanyID, employee.ID, hash)
	if errors.Is(err, repository.ErrNotFound) {
		return notFoundErr("Employee user account not found")
	}
	return err
}

// Deactivate is a soft delete: punches stay, login and punching stop.
func (s *EmployeeService) Deactivate(ctx context.Context, actor Actor, id string) error {
	if !actor.IsManager() {
		return forbiddenErr("Manager access required")
	}

	err := s.employeeRepo.Deactivate(ctx, actor.CompanyID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return notFoundErr("Employee not found")
	}
	return err
}

// LinkTelegram binds (or with nil, unbinds) a Telegram chat to an employee.
func (s *EmployeeService) LinkTelegram(ctx context.Context, actor Actor, id string, chatID *int64) error {
	if !actor.IsManager() {
		return forbiddenErr("Manager access required")
	}

	err := s.employeeRepo.SetTelegramChatID(ctx, actor.CompanyID, id, chatID)
	if errors.Is(err, repository.ErrNotFound) {
		return notFoundErr("Employee not found")
	}
	if errors.Is(err, repository.ErrDuplicate) {
		return conflictErr("Telegram chat is already linked to another employee")
	}
	return err
}

// ByTelegramChat finds the active employee linked to a chat, nil if none.
func (s *EmployeeService) ByTelegramChat(ctx context.Context, chatID int64) (*models.Employee, error) {
	return s.employeeRepo.GetByTelegramChatID(ctx, chatID)
}

// TelegramActor resolves a linked chat to the employee acting through it.
// It returns nil when the chat is not linked to an active employee.
func (s *EmployeeService) TelegramActor(ctx context.Context, chatID int64) (*Actor, error) {
	employee, err := s.employeeRepo.GetByTelegramChatID(ctx, chatID)
	if err != nil || employee == nil {
		return nil, err
	}

	actor := &Actor{
		Username:     employee.EmployeeNumber,
		Role:         models.RoleEmployee,
		CompanyID:    employee.CompanyID,
		EmployeeID:   employee.ID,
		EmployeeName: employee.Name,
	}

	user, err := s.userRepo.GetEmployeeUser(ctx, employee.CompanyID, employee.ID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		actor.UserID = user.ID
		actor.Username = user.Username
	}
	return actor, nil
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

func newTempPassword() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}
