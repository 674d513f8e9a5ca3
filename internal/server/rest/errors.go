package rest

import (
	"errors"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/server/services"
	"github.com/dmitrijs2005/taskboard/internal/server/validation"
	"github.com/gofiber/fiber/v2"
)

type errorResponse struct {
	Message string                  `json:"message"`
	Errors  []validation.FieldIssue `json:"errors,omitempty"`
}

// failure holds the messages a handler answers with when a service call
// fails. Empty fields fall back to generic texts.
type failure struct {
	notFound     string
	unauthorized string
	internal     string
}

func writeMessage(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(errorResponse{Message: msg})
}

// writeError maps a service error to an HTTP response.
func (s *HTTPServer) writeError(c *fiber.Ctx, err error, f failure) error {
	if ve, ok := validation.AsValidationError(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Message: "Invalid data", Errors: ve.Issues})
	}

	var ce *services.ConflictError
	if errors.As(err, &ce) {
		return writeMessage(c, fiber.StatusBadRequest, ce.Message)
	}

	switch {
	case errors.Is(err, common.ErrorNotFound):
		return writeMessage(c, fiber.StatusNotFound, orDefault(f.notFound, "Not found"))
	case errors.Is(err, common.ErrorUnauthorized):
		return writeMessage(c, fiber.StatusUnauthorized, orDefault(f.unauthorized, "Authentication required"))
	case errors.Is(err, common.ErrorUnavailable):
		return writeMessage(c, fiber.StatusServiceUnavailable, "Service unavailable")
	}

	s.logger.Error(c.UserContext(), "request failed",
		"path", c.Path(),
		"error", err,
	)
	return writeMessage(c, fiber.StatusInternalServerError, orDefault(f.internal, "Internal server error"))
}

// handleFiberError renders errors that escape the handlers, such as
// unknown routes, in the same JSON shape.
func (s *HTTPServer) handleFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return writeMessage(c, fe.Code, fe.Message)
	}
	return s.writeError(c, err, failure{})
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
