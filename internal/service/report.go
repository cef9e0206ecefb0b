package service

import (
	"context"
	"strings"
	"time"

	"time-clock/internal/config"
	"time-clock/internal/repository"
	"time-clock/internal/timesheet"

	"github.com/sirupsen/logrus"
)

type ReportQuery struct {
	StartDate  string
	EndDate    string
	EmployeeID string
}

// WeeklyReport is a computed report together with the range it covers.
type WeeklyReport struct {
	Start time.Time
	End   time.Time // last day, inclusive
	Rows  []timesheet.EmployeeReport
}

type ReportService struct {
	punchRepo    repository.PunchRepository
	employeeRepo repository.EmployeeRepository
	aggregator   *timesheet.Aggregator
	location     *time.Location
	logger       *logrus.Logger
}

func NewReportService(
	punchRepo repository.PunchRepository,
	employeeRepo repository.EmployeeRepository,
	location *time.Location,
) *ReportService {
	return &ReportService{
		punchRepo:    punchRepo,
		employeeRepo: employeeRepo,
		aggregator:   timesheet.NewAggregator(location),
		location:     location,
		logger:       config.NewLogger(),
	}
}

func (s *ReportService) Location() *time.Location {
	return s.location
}

// Weekly aggregates hours per employee and day for an inclusive date range.
func (s *ReportService) Weekly(ctx context.Context, actor Actor, q ReportQuery) (*WeeklyReport, error) {
	if q.StartDate == "" || q.EndDate == "" {
		return nil, validationErr("start_date and end_date are required")
	}

	from, to, err := timesheet.RangeBounds(q.StartDate, q.EndDate, s.location)
	if err != nil {
		return nil, validationErr("%s", err.Error())
	}

	employeeID := strings.TrimSpace(q.EmployeeID)
	if !actor.IsManager() {
		if actor.EmployeeID == "" {
			return &WeeklyReport{Start: from, End: to.AddDate(0, 0, -1), Rows: []timesheet.EmployeeReport{}}, nil
		}
		employeeID = actor.EmployeeID
	}

	punches, err := s.punchRepo.Find(ctx, actor.CompanyID, repository.PunchFilter{
		EmployeeID: employeeID,
		From:       from,
		To:         to,
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0)
	seen := make(map[string]bool)
	for _, p := range punches {
		if !seen[p.EmployeeID] {
			seen[p.EmployeeID] = true
			ids = append(ids, p.EmployeeID)
		}
	}

	employees, err := s.employeeRepo.GetByIDs(ctx, actor.CompanyID, ids)
	if err != nil {
		return nil, err
	}

	info := make(map[string]timesheet.EmployeeInfo, len(employees))
	for _, e := range employees {
		number := e.EmployeeNumber
		info[e.ID] = timesheet.EmployeeInfo{ID: e.ID, Name: e.Name, Number: &number}
	}

	rows := s.aggregator.Compute(punches, info)

	s.logger.WithFields(logrus.Fields{
		"company_id": actor.CompanyID,
		"start":      q.StartDate,
		"end":        q.EndDate,
		"punches":    len(punches),
		"rows":       len(rows),
	}).Debug("Weekly report computed")

	return &WeeklyReport{Start: from, End: to.AddDate(0, 0, -1), Rows: rows}, nil
}
