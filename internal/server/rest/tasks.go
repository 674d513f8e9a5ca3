package rest

import (
	"github.com/dmitrijs2005/taskboard/internal/server/services"
	"github.com/dmitrijs2005/taskboard/internal/server/validation"
	"github.com/gofiber/fiber/v2"
)

const taskNotFound = "Task not found"

func (s *HTTPServer) listTasks(c *fiber.Ctx) error {
	q := services.TaskQuery{Search: c.Query("search")}

	if raw := c.Query("categoryId"); raw != "" {
		id, err := validation.ParseID("categoryId", raw)
		if err != nil {
			return s.writeError(c, err, failure{})
		}
		q.CategoryID = &id
	}

	list, err := s.services.Tasks.List(c.UserContext(), currentUserID(c), q)
	if err != nil {
		return s.writeError(c, err, failure{internal: "Failed to fetch tasks"})
	}
	return c.JSON(list)
}

func (s *HTTPServer) taskStats(c *fiber.Ctx) error {
	stats, err := s.services.Tasks.Stats(c.UserContext(), currentUserID(c))
	if err != nil {
		return s.writeError(c, err, failure{internal: "Failed to fetch tasks"})
	}
	return c.JSON(stats)
}

func (s *HTTPServer) getTask(c *fiber.Ctx) error {
	id, err := validation.ParseID("id", c.Params("id"))
	if err != nil {
		return s.writeError(c, err, failure{})
	}

	task, err := s.services.Tasks.Get(c.UserContext(), currentUserID(c), id)
	if err != nil {
		return s.writeError(c, err, failure{notFound: taskNotFound, internal: "Failed to fetch tasks"})
	}
	return c.JSON(task)
}

func (s *HTTPServer) createTask(c *fiber.Ctx) error {
	in, err := validation.DecodeTaskInput(c.Body())
	if err != nil {
		return s.writeError(c, err, failure{})
	}

	created, err := s.services.Tasks.Create(c.UserContext(), currentUserID(c), in)
	if err != nil {
		return s.writeError(c, err, failure{internal: "Failed to create task"})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (s *HTTPServer) updateTask(c *fiber.Ctx) error {
	id, err := validation.ParseID("id", c.Params("id"))
	if err != nil {
		return s.writeError(c, err, failure{})
	}

	in, err := validation.DecodeTaskUpdate(c.Body())
	if err != nil {
		return s.writeError(c, err, failure{})
	}

	updated, err := s.services.Tasks.Update(c.UserContext(), currentUserID(c), id, in)
	if err != nil {
		return s.writeError(c, err, failure{notFound: taskNotFound, internal: "Failed to update task"})
	}
	return c.JSON(updated)
}

func (s *HTTPServer) deleteTask(c *fiber.Ctx) error {
	id, err := validation.ParseID("id", c.Params("id"))
	if err != nil {
		return s.writeError(c, err, failure{})
	}

	if err := s.services.Tasks.Delete(c.UserContext(), currentUserID(c), id); err != nil {
		return s.writeError(c, err, failure{notFound: taskNotFound, internal: "Failed to delete task"})
	}
	return c.JSON(fiber.Map{"message": "Task deleted successfully"})
}
