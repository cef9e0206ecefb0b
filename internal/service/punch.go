package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"time-clock/internal/config"
	"time-clock/internal/models"
	"time-clock/internal/repository"
	"time-clock/internal/timesheet"

	"github.com/sirupsen/logrus"
)

// ListLimit caps punch listings.
const ListLimit = 500

type PunchRequest struct {
	EmployeeID string     `json:"employee_id"`
	PunchType  string     `json:"punch_type"`
	Notes      *string    `json:"notes" label:"Notes" validate:"omitempty,max=500"`
	PunchTime  *time.Time `json:"punch_time"`
}

type PunchQuery struct {
	EmployeeID string
	StartDate  string
	EndDate    string
}

type PunchService struct {
	punchRepo    repository.PunchRepository
	employeeRepo repository.EmployeeRepository
	location     *time.Location
	now          func() time.Time
	logger       *logrus.Logger
}

func NewPunchService(
	punchRepo repository.PunchRepository,
	employeeRepo repository.EmployeeRepository,
	location *time.Location,
) *PunchService {
	return &PunchService{
		punchRepo:    punchRepo,
		employeeRepo: employeeRepo,
		location:     location,
		now:          time.Now,
		logger:       config.NewLogger(),
	}
}

// Punch records a punch for the actor. Employees punch themselves at server
// time and go through the gate; managers enter punches for anyone and may
// backdate them.
func (s *PunchService) Punch(ctx context.Context, actor Actor, req PunchRequest) (*models.Punch, error) {
	punchType, err := models.ParsePunchType(req.PunchType)
	if err != nil {
		return nil, validationErr("Invalid punch type")
	}

	targetID := actor.EmployeeID
	if actor.IsManager() {
		targetID = strings.TrimSpace(req.EmployeeID)
	}
	if targetID == "" {
		return nil, validationErr("Employee ID required")
	}

	employee, err := s.employeeRepo.GetActiveByID(ctx, actor.CompanyID, targetID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, notFoundErr("Employee not found")
	}

	now := s.now()
	punch := &models.Punch{
		CompanyID:    actor.CompanyID,
		EmployeeID:   employee.ID,
		EmployeeName: employee.Name,
		PunchType:    punchType,
		PunchTime:    now,
		Notes:        trimmed(req.Notes),
		CreatedBy:    actor.userRef(),
	}

	s.logger.WithFields(logrus.Fields{
		"company_id":  actor.CompanyID,
		"employee_id": employee.ID,
		"punch_type":  punchType,
		"by":          actor.Username,
	}).Info("Recording punch")

	if actor.IsManager() {
		if req.PunchTime != nil && !req.PunchTime.IsZero() {
			punch.PunchTime = *req.PunchTime
		}
		if err := s.punchRepo.Create(ctx, punch); err != nil {
			return nil, err
		}
		return punch, nil
	}

	dayStart, dayEnd := timesheet.DayBounds(now, s.location)
	err = s.punchRepo.CreateGated(ctx, punch, dayStart, dayEnd, func(today []models.Punch) error {
		decision := timesheet.EvaluateGate(today, punchType)
		if !decision.Allowed {
			return &GateError{PunchType: punchType, Reason: decision.Reason}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return punch, nil
}

// List returns punches newest first. Employees only ever see their own.
func (s *PunchService) List(ctx context.Context, actor Actor, q PunchQuery) ([]models.Punch, error) {
	filter := repository.PunchFilter{
		EmployeeID: strings.TrimSpace(q.EmployeeID),
		Limit:      ListLimit,
		Newest:     true,
	}
	if !actor.IsManager() {
		if actor.EmployeeID == "" {
			return []models.Punch{}, nil
		}
		filter.EmployeeID = actor.EmployeeID
	}

	if q.StartDate != "" {
		start, err := timesheet.ParseDate(q.StartDate, s.location)
		if err != nil {
			return nil, validationErr("%s", err.Error())
		}
		filter.From = start
	}
	if q.EndDate != "" {
		end, err := timesheet.ParseDate(q.EndDate, s.location)
		if err != nil {
			return nil, validationErr("%s", err.Error())
		}
		filter.To = end.AddDate(0, 0, 1)
	}

	punches, err := s.punchRepo.Find(ctx, actor.CompanyID, filter)
	if err != nil {
		return nil, err
	}
	if punches == nil {
		punches = []models.Punch{}
	}
	return punches, nil
}

func (s *PunchService) Delete(ctx context.Context, actor Actor, id string) error {
	if !actor.IsManager() {
		return forbiddenErr("Manager access required")
	}

	err := s.punchRepo.Delete(ctx, actor.CompanyID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return notFoundErr("Punch not found")
	}
	return err
}

// Today returns the employee's punches for the current local day.
func (s *PunchService) Today(ctx context.Context, companyID, employeeID string) ([]models.Punch, error) {
	dayStart, dayEnd := timesheet.DayBounds(s.now(), s.location)
	return s.punchRepo.FindToday(ctx, companyID, employeeID, dayStart, dayEnd)
}

// TodayActions projects the gate over today's punches for buttons.
func (s *PunchService) TodayActions(ctx context.Context, companyID, employeeID string) ([]timesheet.Action, error) {
	today, err := s.Today(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	return timesheet.AvailableActions(today), nil
}
