package api

import (
	"github.com/gofiber/fiber/v2"
)

type companySettingsRequest struct {
	CompanyName string `json:"company_name" label:"Company name" validate:"required,max=200"`
}

// GET /api/company-settings
// Public callers pass ?companyId=, signed-in users get their own company.
func (s *Server) getCompanySettings(c *fiber.Ctx) error {
	companyID := c.Query("companyId")
	if actor := actorFrom(c); actor != nil {
		companyID = actor.CompanyID
	}

	name, err := s.svc.Settings.CompanyName(c.UserContext(), companyID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"company_name": name})
}

// PUT /api/company-settings
func (s *Server) updateCompanySettings(c *fiber.Ctx) error {
	var req companySettingsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	name, err := s.svc.Settings.Update(c.UserContext(), *actorFrom(c), req.CompanyName)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "company_name": name})
}
