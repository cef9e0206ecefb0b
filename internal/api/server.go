package api

import (
	"context"
	"time"

	"time-clock/internal/config"
	"time-clock/internal/service"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const TokenCookie = "timeclock_token"

// Services are the use cases the HTTP layer dispatches to.
type Services struct {
	Auth      *service.AuthService
	Punches   *service.PunchService
	Reports   *service.ReportService
	Employees *service.EmployeeService
	Companies *service.CompanyService
	Settings  *service.CompanySettingsService
}

type Options struct {
	CORSOrigins  string
	CookieSecure bool
	// LoginLimit is the number of login attempts per IP per minute.
	LoginLimit int
}

type Server struct {
	app    *fiber.App
	svc    Services
	opts   Options
	logger *logrus.Logger
}

func NewServer(svc Services, opts Options) *Server {
	if opts.LoginLimit <= 0 {
		opts.LoginLimit = 10
	}

	s := &Server{
		svc:    svc,
		opts:   opts,
		logger: config.NewLogger(),
	}

	s.app = fiber.New(fiber.Config{
		JSONEncoder:           sonic.ConfigStd.Marshal,
		JSONDecoder:           sonic.ConfigStd.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           90 * time.Second,
	})

	s.app.Use(recoveryMiddleware())
	s.app.Use(corsMiddleware(opts.CORSOrigins))
	s.app.Use(s.requestLogger())

	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	api := s.app.Group("/api")

	api.Post("/login", s.loginLimiter(), s.login)
	api.Post("/logout", s.logout)
	api.Get("/me", s.optionalAuth, s.me)

	api.Get("/company-settings", s.optionalAuth, s.getCompanySettings)
	api.Put("/company-settings", s.requireAuth, s.requireCompany, s.requireManager, s.updateCompanySettings)

	api.Get("/employees/public", s.listPublicEmployees)
	api.Get("/employees", s.requireAuth, s.requireCompany, s.listEmployees)
	api.Post("/employees", s.requireAuth, s.requireCompany, s.requireManager, s.createEmployee)
	api.Put("/employees/:id", s.requireAuth, s.requireCompany, s.requireManager, s.updateEmployee)
	api.Put("/employees/:id/password", s.requireAuth, s.requireCompany, s.requireManager, s.setEmployeePassword)
	api.Put("/employees/:id/telegram", s.requireAuth, s.requireCompany, s.requireManager, s.linkTelegram)
	api.Delete("/employees/:id", s.requireAuth, s.requireCompany, s.requireManager, s.deactivateEmployee)

	api.Post("/punch", s.requireAuth, s.requireCompany, s.createPunch)
	api.Get("/punches", s.requireAuth, s.requireCompany, s.listPunches)
	api.Get("/punches/today/actions", s.requireAuth, s.requireCompany, s.todayActions)
	api.Delete("/punches/:id", s.requireAuth, s.requireCompany, s.requireManager, s.deletePunch)

	api.Get("/reports/weekly", s.requireAuth, s.requireCompany, s.weeklyReport)
	api.Get("/reports/weekly.xlsx", s.requireAuth, s.requireCompany, s.weeklyReportXLSX)
}

// App exposes the fiber app, mostly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	s.logger.WithField("addr", addr).Info("HTTP server listening")
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
