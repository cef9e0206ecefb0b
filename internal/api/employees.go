package api

import (
	"time-clock/internal/service"

	"github.com/gofiber/fiber/v2"
)

type passwordRequest struct {
	Password string `json:"password" label:"Password" validate:"required,min=6,max=128"`
}

type telegramRequest struct {
	ChatID *int64 `json:"chat_id"`
}

// GET /api/employees/public?companyId=
func (s *Server) listPublicEmployees(c *fiber.Ctx) error {
	employees, err := s.svc.Employees.ListPublic(c.UserContext(), c.Query("companyId"))
	if err != nil {
		return err
	}
	return c.JSON(employees)
}

// GET /api/employees?status=active|inactive|all
func (s *Server) listEmployees(c *fiber.Ctx) error {
	employees, err := s.svc.Employees.List(c.UserContext(), *actorFrom(c), c.Query("status"))
	if err != nil {
		return err
	}
	return c.JSON(employees)
}

// POST /api/employees
func (s *Server) createEmployee(c *fiber.Ctx) error {
	var req service.EmployeeInput
	if err := parseBody(c, &req); err != nil {
		return err
	}

	created, err := s.svc.Employees.Create(c.UserContext(), *actorFrom(c), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":       true,
		"id":            created.ID,
		"temp_password": created.TempPassword,
	})
}

// PUT /api/employees/:id
func (s *Server) updateEmployee(c *fiber.Ctx) error {
	var req service.EmployeeInput
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := s.svc.Employees.Update(c.UserContext(), *actorFrom(c), c.Params("id"), req); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// PUT /api/employees/:id/password
func (s *Server) setEmployeePassword(c *fiber.Ctx) error {
	var req passwordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := s.svc.Employees.SetPassword(c.UserContext(), *actorFrom(c), c.Params("id"), req.Password); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// PUT /api/employees/:id/telegram
// A null chat_id unlinks the chat.
func (s *Server) linkTelegram(c *fiber.Ctx) error {
	var req telegramRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := s.svc.Employees.LinkTelegram(c.UserContext(), *actorFrom(c), c.Params("id"), req.ChatID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// DELETE /api/employees/:id
func (s *Server) deactivateEmployee(c *fiber.Ctx) error {
	if err := s.svc.Employees.Deactivate(c.UserContext(), *actorFrom(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
