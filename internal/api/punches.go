package api

import (
	"time-clock/internal/service"

	"github.com/gofiber/fiber/v2"
)

// POST /api/punch
func (s *Server) createPunch(c *fiber.Ctx) error {
	var req service.PunchRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	punch, err := s.svc.Punches.Punch(c.UserContext(), *actorFrom(c), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "id": punch.ID})
}

// GET /api/punches?employee_id=&start_date=&end_date=
func (s *Server) listPunches(c *fiber.Ctx) error {
	punches, err := s.svc.Punches.List(c.UserContext(), *actorFrom(c), service.PunchQuery{
		EmployeeID: c.Query("employee_id"),
		StartDate:  c.Query("start_date"),
		EndDate:    c.Query("end_date"),
	})
	if err != nil {
		return err
	}
	return c.JSON(punches)
}

// GET /api/punches/today/actions
// Managers may look at an employee with ?employee_id=.
func (s *Server) todayActions(c *fiber.Ctx) error {
	actor := actorFrom(c)

	employeeID := actor.EmployeeID
	if actor.IsManager() && c.Query("employee_id") != "" {
		employeeID = c.Query("employee_id")
	}
	if employeeID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Employee ID required")
	}

	actions, err := s.svc.Punches.TodayActions(c.UserContext(), actor.CompanyID, employeeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"employee_id": employeeID, "actions": actions})
}

// DELETE /api/punches/:id
func (s *Server) deletePunch(c *fiber.Ctx) error {
	if err := s.svc.Punches.Delete(c.UserContext(), *actorFrom(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
