package cli

import (
	"context"
	"flag"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/taskboard/internal/client/api"
)

func (a *App) listTasks(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tasks", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	search := fs.String("search", "", "substring of title or description")
	category := fs.Int64("category", 0, "category id")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	list, err := a.api.ListTasks(ctx, api.TaskFilter{Search: *search, CategoryID: *category})
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.printf("No tasks\n")
		return nil
	}
	for _, t := range list {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		due := ""
		if t.DueDate != nil {
			due = " due " + *t.DueDate
		}
		a.printf("[%s] %d\t%s\t(%s, category %d%s)\n", mark, t.ID, t.Title, t.Priority, t.CategoryID, due)
	}
	return nil
}

func (a *App) addTask(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	categoryID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || categoryID <= 0 {
		return errUsage
	}

	t, err := a.api.CreateTask(ctx, categoryID, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	a.printf("Created task %d\n", t.ID)
	return nil
}

func (a *App) completeTask(ctx context.Context, args []string) error {
	id, err := singleID(args)
	if err != nil {
		return err
	}
	if _, err := a.api.SetCompleted(ctx, id, true); err != nil {
		return err
	}
	a.printf("Task %d completed\n", id)
	return nil
}

// moveTask reassigns a task to another category.
func (a *App) moveTask(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return errUsage
	}
	categoryID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || categoryID <= 0 {
		return errUsage
	}

	t, err := a.api.UpdateTask(ctx, id, api.TaskUpdate{CategoryID: &categoryID})
	if err != nil {
		return err
	}
	a.printf("Task %d moved to category %d\n", t.ID, t.CategoryID)
	return nil
}

func (a *App) removeTask(ctx context.Context, args []string) error {
	id, err := singleID(args)
	if err != nil {
		return err
	}
	if err := a.api.DeleteTask(ctx, id); err != nil {
		return err
	}
	a.printf("Task %d deleted\n", id)
	return nil
}

func (a *App) stats(ctx context.Context, _ []string) error {
	s, err := a.api.Stats(ctx)
	if err != nil {
		return err
	}
	a.printf("total %d, completed %d, pending %d\n", s.Total, s.Completed, s.Pending)
	return nil
}
