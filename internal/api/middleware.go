package api

import (
	"strings"
	"time"

	"time-clock/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const actorKey = "actor"

func recoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
	})
}

// corsMiddleware allows credentials only for an explicit origin list.
func corsMiddleware(origins string) fiber.Handler {
	origins = strings.TrimSpace(origins)
	if origins == "" || origins == "*" {
		return cors.New(cors.Config{
			AllowOrigins: "*",
			AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		})
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	})
}

func (s *Server) requestLogger() fiber.Handler {
	return logger.New(logger.Config{
		Output:     s.logger.Writer(),
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "${ip} - ${method} ${path} - ${status} - ${latency}\n",
	})
}

func (s *Server) loginLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        s.opts.LoginLimit,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many login attempts. Please try again later.",
			})
		},
	})
}

// tokenFrom reads the session token from the Authorization header or the cookie.
func tokenFrom(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
			return strings.TrimSpace(h[7:])
		}
	}
	return strings.TrimSpace(c.Cookies(TokenCookie))
}

func (s *Server) requireAuth(c *fiber.Ctx) error {
	token := tokenFrom(c)
	if token == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Please log in")
	}

	actor, err := s.svc.Auth.ParseToken(token)
	if err != nil {
		return err
	}

	c.Locals(actorKey, actor)
	return c.Next()
}

// optionalAuth attaches the actor when a valid token is present and carries on otherwise.
func (s *Server) optionalAuth(c *fiber.Ctx) error {
	if token := tokenFrom(c); token != "" {
		if actor, err := s.svc.Auth.ParseToken(token); err == nil {
			c.Locals(actorKey, actor)
		}
	}
	return c.Next()
}

func (s *Server) requireCompany(c *fiber.Ctx) error {
	actor := actorFrom(c)
	if actor == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Please log in")
	}

	if err := s.svc.Companies.CheckAccess(c.UserContext(), actor.CompanyID); err != nil {
		return err
	}
	return c.Next()
}

func (s *Server) requireManager(c *fiber.Ctx) error {
	actor := actorFrom(c)
	if actor == nil || !actor.IsManager() {
		return fiber.NewError(fiber.StatusForbidden, "Manager access required")
	}
	return c.Next()
}

func actorFrom(c *fiber.Ctx) *service.Actor {
	actor, _ := c.Locals(actorKey).(*service.Actor)
	return actor
}
