package rest

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const localsUserID = "userID"

// requestID propagates the caller's X-Request-ID or assigns a new one.
func (s *HTTPServer) requestID(c *fiber.Ctx) error {
	id := c.Get(common.RequestIDHeaderName)
	if id == "" {
		id = uuid.NewString()
	}

	c.Set(common.RequestIDHeaderName, id)
	c.SetUserContext(logging.WithRequestID(c.UserContext(), id))

	return c.Next()
}

func (s *HTTPServer) accessLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	// the error handler has not run yet, so take the status from the error
	status := c.Response().StatusCode()
	if err != nil {
		status = fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
	}

	s.logger.Info(c.UserContext(), "request",
		"method", c.Method(),
		"path", c.Path(),
		"status", status,
		"duration", time.Since(start).String(),
	)
	return err
}

// requireAuth verifies the bearer token, loads the user it names and stores
// the user's id in Locals for the handlers.
func (s *HTTPServer) requireAuth(c *fiber.Ctx) error {
	token, ok := common.ParseBearer(c.Get(common.AuthorizationHeaderName))
	if !ok {
		return writeMessage(c, fiber.StatusUnauthorized, "Authentication required")
	}

	user, err := s.services.Users.Authenticate(c.UserContext(), token)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrorUnauthorized):
		return writeMessage(c, fiber.StatusUnauthorized, "User not found")
	case errors.Is(err, common.ErrTokenExpired):
		return writeMessage(c, fiber.StatusUnauthorized, "Token expired")
	case errors.Is(err, common.ErrInvalidToken):
		return writeMessage(c, fiber.StatusUnauthorized, "Invalid token")
	default:
		return s.writeError(c, err, failure{internal: "Authentication failed"})
	}

	c.Locals(localsUserID, user.ID)
	return c.Next()
}

// rateLimit throttles route per client IP. Limiter failures are logged and
// the request is let through.
func (s *HTTPServer) rateLimit(route string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if s.limiter == nil {
			return c.Next()
		}

		allowed, err := s.limiter.Allow(c.UserContext(), route+":"+c.IP())
		if err != nil {
			s.logger.Warn(c.UserContext(), "rate limiter unavailable", "route", route, "error", err)
			return c.Next()
		}
		if !allowed {
			return writeMessage(c, fiber.StatusTooManyRequests, "Too many requests")
		}
		return c.Next()
	}
}

func currentUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(localsUserID).(int64)
	return id
}
