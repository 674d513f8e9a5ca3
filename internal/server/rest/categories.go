package rest

import (
	"github.com/dmitrijs2005/taskboard/internal/server/validation"
	"github.com/gofiber/fiber/v2"
)

func (s *HTTPServer) listCategories(c *fiber.Ctx) error {
	list, err := s.services.Categories.List(c.UserContext(), currentUserID(c))
	if err != nil {
		return s.writeError(c, err, failure{internal: "Failed to fetch categories"})
	}
	return c.JSON(list)
}

func (s *HTTPServer) createCategory(c *fiber.Ctx) error {
	in, err := validation.DecodeCategoryInput(c.Body())
	if err != nil {
		return s.writeError(c, err, failure{})
	}

	created, err := s.services.Categories.Create(c.UserContext(), currentUserID(c), in)
	if err != nil {
		return s.writeError(c, err, failure{internal: "Failed to create category"})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (s *HTTPServer) updateCategory(c *fiber.Ctx) error {
	id, err := validation.ParseID("id", c.Params("id"))
	if err != nil {
		return s.writeError(c, err, failure{})
	}

	in, err := validation.DecodeCategoryUpdate(c.Body())
	if err != nil {
		return s.writeError(c, err, failure{})
	}

	updated, err := s.services.Categories.Update(c.UserContext(), currentUserID(c), id, in)
	if err != nil {
		return s.writeError(c, err, failure{notFound: "Category not found", internal: "Failed to update category"})
	}
	return c.JSON(updated)
}

func (s *HTTPServer) deleteCategory(c *fiber.Ctx) error {
	id, err := validation.ParseID("id", c.Params("id"))
	if err != nil {
		return s.writeError(c, err, failure{})
	}

	if err := s.services.Categories.Delete(c.UserContext(), currentUserID(c), id); err != nil {
		return s.writeError(c, err, failure{notFound: "Category not found", internal: "Failed to delete category"})
	}
	return c.JSON(fiber.Map{"message": "Category deleted successfully"})
}
