package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/server/config"
	"github.com/dmitrijs2005/taskboard/internal/server/events"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskboard/internal/server/validation"
)

// TaskQuery selects which of a user's tasks List returns. Search wins over
// CategoryID; with neither set every task is returned.
type TaskQuery struct {
	Search     string
	CategoryID *int64
}

type TaskService struct {
	repomanager repomanager.RepositoryManager
	policy      categoryPolicy
	events      events.Publisher
	log         logging.Logger
}

func NewTaskService(m repomanager.RepositoryManager, cfg *config.Config, pub events.Publisher, log logging.Logger) *TaskService {
	return &TaskService{
		repomanager: m,
		policy:      categoryPolicy{categories: m.Categories(), strict: cfg.StrictCategoryOwnership, log: log},
		events:      pub,
		log:         log,
	}
}

func (s *TaskService) List(ctx context.Context, userID int64, q TaskQuery) ([]*models.Task, error) {
	repo := s.repomanager.Tasks()

	var (
		list []*models.Task
		err  error
	)
	switch {
	case q.Search != "":
		list, err = repo.SearchByUser(ctx, userID, q.Search)
	case q.CategoryID != nil:
		list, err = repo.ListByCategoryAndUser(ctx, *q.CategoryID, userID)
	default:
		list, err = repo.ListByUser(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	return list, nil
}

func (s *TaskService) Get(ctx context.Context, userID, id int64) (*models.Task, error) {
	return s.owned(ctx, userID, id)
}

func (s *TaskService) Create(ctx context.Context, userID int64, in *validation.TaskInput) (*models.Task, error) {
	if err := s.policy.check(ctx, userID, in.CategoryID, "categoryId"); err != nil {
		return nil, err
	}

	t, err := s.repomanager.Tasks().Create(ctx, in.ToTask(userID))
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}

	events.Emit(ctx, s.events, s.log, events.Event{Type: events.TaskCreated, UserID: userID, EntityID: t.ID, Payload: t})
	return t, nil
}

// Update applies a partial update. Moving the task to another category goes
// through the same category check as Create.
func (s *TaskService) Update(ctx context.Context, userID, id int64, in *validation.TaskUpdateInput) (*models.Task, error) {
	current, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	patch := in.Patch()
	if patch.Empty() {
		return current, nil
	}
	if patch.CategoryID != nil && *patch.CategoryID != current.CategoryID {
		if err := s.policy.check(ctx, userID, *patch.CategoryID, "categoryId"); err != nil {
			return nil, err
		}
	}

	t, err := s.repomanager.Tasks().Update(ctx, id, patch)
	if err != nil {
		return nil, wrapRepoErr("error updating task", err)
	}

	events.Emit(ctx, s.events, s.log, events.Event{Type: events.TaskUpdated, UserID: userID, EntityID: t.ID, Payload: t})
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repomanager.Tasks().Delete(ctx, id); err != nil {
		return wrapRepoErr("error deleting task", err)
	}

	events.Emit(ctx, s.events, s.log, events.Event{Type: events.TaskDeleted, UserID: userID, EntityID: id})
	return nil
}

// Stats counts the user's tasks by completion state.
func (s *TaskService) Stats(ctx context.Context, userID int64) (models.TaskStats, error) {
	list, err := s.repomanager.Tasks().ListByUser(ctx, userID)
	if err != nil {
		return models.TaskStats{}, fmt.Errorf("error listing tasks: %w", err)
	}

	stats := models.TaskStats{Total: len(list)}
	for _, t := range list {
		if t.Completed {
			stats.Completed++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	return stats, nil
}

func (s *TaskService) owned(ctx context.Context, userID, id int64) (*models.Task, error) {
	t, err := s.repomanager.Tasks().Get(ctx, id)
	if err != nil {
		return nil, wrapRepoErr("error loading task", err)
	}
	if t.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

// wrapRepoErr passes common.ErrorNotFound through untouched and wraps
// anything else with msg.
func wrapRepoErr(msg string, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}
