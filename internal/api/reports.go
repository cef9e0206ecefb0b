package api

import (
	"fmt"

	"time-clock/internal/export"
	"time-clock/internal/service"

	"github.com/gofiber/fiber/v2"
)

func reportQuery(c *fiber.Ctx) service.ReportQuery {
	return service.ReportQuery{
		StartDate:  c.Query("start_date"),
		EndDate:    c.Query("end_date"),
		EmployeeID: c.Query("employee_id"),
	}
}

// GET /api/reports/weekly?start_date=&end_date=&employee_id=
func (s *Server) weeklyReport(c *fiber.Ctx) error {
	report, err := s.svc.Reports.Weekly(c.UserContext(), *actorFrom(c), reportQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(report.Rows)
}

// GET /api/reports/weekly.xlsx
func (s *Server) weeklyReportXLSX(c *fiber.Ctx) error {
	report, err := s.svc.Reports.Weekly(c.UserContext(), *actorFrom(c), reportQuery(c))
	if err != nil {
		return err
	}

	data, err := export.WeeklyWorkbookBytes(report.Rows, report.Start, report.End, s.svc.Reports.Location())
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.Filename(report.Start, report.End)))
	return c.Send(data)
}
