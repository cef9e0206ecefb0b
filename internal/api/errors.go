package api

import (
	"errors"

	"time-clock/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// errorHandler turns every returned error into {"error": "..."}.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Server error"

	var gateErr *service.GateError
	var svcErr *service.Error
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &gateErr):
		status = fiber.StatusBadRequest
		message = gateErr.Reason
	case errors.As(err, &svcErr):
		status = statusFor(svcErr.Kind)
		message = svcErr.Message
	case errors.As(err, &fiberErr):
		status = fiberErr.Code
		message = fiberErr.Message
	default:
		s.logger.WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}).WithError(err).Error("Request failed")
	}

	return c.Status(status).JSON(fiber.Map{"error": message})
}

func statusFor(kind error) int {
	switch kind {
	case service.ErrValidation, service.ErrConflict:
		return fiber.StatusBadRequest
	case service.ErrNotFound:
		return fiber.StatusNotFound
	case service.ErrForbidden:
		return fiber.StatusForbidden
	case service.ErrUnauthorized:
		return fiber.StatusUnauthorized
	}
	return fiber.StatusInternalServerError
}
