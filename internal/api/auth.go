package api

import (
	"time"

	"time-clock/internal/service"

	"github.com/gofiber/fiber/v2"
)

// POST /api/login
func (s *Server) login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	actor, token, err := s.svc.Auth.Login(c.UserContext(), req)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.svc.Auth.TTL()),
		HTTPOnly: true,
		Secure:   s.opts.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"user":    actor,
		"token":   token,
	})
}

// POST /api/logout
// Tokens are stateless; logging out drops the cookie.
func (s *Server) logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     TokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   s.opts.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"success": true})
}

// GET /api/me
func (s *Server) me(c *fiber.Ctx) error {
	if actor := actorFrom(c); actor != nil {
		return c.JSON(fiber.Map{"user": actor})
	}
	return c.JSON(fiber.Map{"user": nil})
}
