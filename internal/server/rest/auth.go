package rest

import (
	"errors"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/server/validation"
	"github.com/gofiber/fiber/v2"
)

func (s *HTTPServer) register(c *fiber.Ctx) error {
	in, err := validation.DecodeRegister(c.Body())
	if err != nil {
		return s.writeError(c, err, failure{})
	}

	res, err := s.services.Users.Register(c.UserContext(), in)
	if err != nil {
		return s.writeError(c, err, failure{internal: "Failed to create account"})
	}

	s.logger.Info(c.UserContext(), "Registered", "username", res.User.Username)
	return c.JSON(res)
}

func (s *HTTPServer) login(c *fiber.Ctx) error {
	in, err := validation.DecodeLogin(c.Body())
	if err != nil {
		return s.writeError(c, err, failure{})
	}

	res, err := s.services.Users.Login(c.UserContext(), in)
	if err != nil {
		return s.writeError(c, err, failure{unauthorized: "Invalid credentials", internal: "Login failed"})
	}

	return c.JSON(res)
}

// me resolves the bearer token itself instead of going through requireAuth
// so that a deleted account is reported as such.
func (s *HTTPServer) me(c *fiber.Ctx) error {
	token, ok := common.ParseBearer(c.Get(common.AuthorizationHeaderName))
	if !ok {
		return writeMessage(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	user, err := s.services.Users.Authenticate(c.UserContext(), token)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"user": user.Public()})
	case errors.Is(err, common.ErrorUnauthorized):
		return writeMessage(c, fiber.StatusUnauthorized, "User not found")
	case errors.Is(err, common.ErrTokenExpired):
		return writeMessage(c, fiber.StatusUnauthorized, "Token expired")
	case errors.Is(err, common.ErrInvalidToken):
		return writeMessage(c, fiber.StatusUnauthorized, "Invalid token")
	default:
		return s.writeError(c, err, failure{})
	}
}
