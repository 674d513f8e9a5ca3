package rest

import (
	"github.com/dmitrijs2005/taskboard/internal/server/validation"
	"github.com/gofiber/fiber/v2"
)

const exportFileName = "tasks-export.json"

func (s *HTTPServer) exportData(c *fiber.Ctx) error {
	payload, err := s.services.Transfer.Export(c.UserContext(), currentUserID(c))
	if err != nil {
		return s.writeError(c, err, failure{internal: "Failed to export data"})
	}

	c.Attachment(exportFileName)
	return c.JSON(payload)
}

func (s *HTTPServer) createSnapshot(c *fiber.Ctx) error {
	snap, err := s.services.Snapshots.Create(c.UserContext(), currentUserID(c))
	if err != nil {
		return s.writeError(c, err, failure{internal: "Failed to export data"})
	}
	return c.Status(fiber.StatusCreated).JSON(snap)
}

func (s *HTTPServer) importData(c *fiber.Ctx) error {
	in, err := validation.DecodeImport(c.Body())
	if err != nil {
		return s.writeError(c, err, failure{})
	}

	res, err := s.services.Transfer.Import(c.UserContext(), currentUserID(c), in)
	if err != nil {
		return s.writeError(c, err, failure{internal: "Failed to import data"})
	}

	return c.JSON(fiber.Map{
		"message":    "Data imported successfully",
		"categories": res.Categories,
		"tasks":      res.Tasks,
	})
}
