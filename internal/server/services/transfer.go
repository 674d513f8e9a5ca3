package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/server/config"
	"github.com/dmitrijs2005/taskboard/internal/server/events"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskboard/internal/server/validation"
)

// TransferService moves a user's whole data set in and out as JSON.
type TransferService struct {
	repomanager repomanager.RepositoryManager
	policy      categoryPolicy
	events      events.Publisher
	log         logging.Logger
	now         func() time.Time
}

func NewTransferService(m repomanager.RepositoryManager, cfg *config.Config, pub events.Publisher, log logging.Logger) *TransferService {
	return &TransferService{
		repomanager: m,
		policy:      categoryPolicy{categories: m.Categories(), strict: cfg.StrictCategoryOwnership, log: log},
		events:      pub,
		log:         log,
		now:         time.Now,
	}
}

// Export returns every category and task of userID.
func (s *TransferService) Export(ctx context.Context, userID int64) (*models.ExportPayload, error) {
	cats, err := s.repomanager.Categories().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}
	tasks, err := s.repomanager.Tasks().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}

	if cats == nil {
		cats = []*models.Category{}
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}

	return &models.ExportPayload{
		Categories: cats,
		Tasks:      tasks,
		ExportDate: s.now().UTC(),
	}, nil
}

// Import recreates the payload's categories and tasks for userID.
//
// Category ids in the payload are only used to re-link tasks: each imported
// category gets a fresh id and tasks pointing at it are rewritten. A task
// whose categoryId matches no payload category keeps it as is, subject to
// the same category check as a regular create.
//
// The payload is checked in full before anything is written. Writes are not
// transactional; if one fails, rows created before it remain.
func (s *TransferService) Import(ctx context.Context, userID int64, in *validation.ImportInput) (*models.ImportResult, error) {
	inPayload := make(map[int64]bool, len(in.Categories))
	for _, c := range in.Categories {
		inPayload[c.ID] = true
	}
	for i, t := range in.Tasks {
		if inPayload[t.CategoryID] {
			continue
		}
		if err := s.policy.check(ctx, userID, t.CategoryID, "tasks["+strconv.Itoa(i)+"].categoryId"); err != nil {
			return nil, err
		}
	}

	result := &models.ImportResult{}
	categoryMap := make(map[int64]int64, len(in.Categories))

	catRepo := s.repomanager.Categories()
	for _, c := range in.Categories {
		created, err := catRepo.Create(ctx, c.ToCategory(userID))
		if err != nil {
			return nil, fmt.Errorf("error importing category %q: %w", c.Name, err)
		}
		categoryMap[c.ID] = created.ID
		result.Categories++
	}

	taskRepo := s.repomanager.Tasks()
	for _, t := range in.Tasks {
		categoryID, ok := categoryMap[t.CategoryID]
		if !ok {
			categoryID = t.CategoryID
		}

		created, err := taskRepo.Create(ctx, t.ToTask(userID, categoryID))
		if err != nil {
			return nil, fmt.Errorf("error importing task %q: %w", t.Title, err)
		}
		if t.Completed {
			done := true
			if _, err := taskRepo.Update(ctx, created.ID, models.TaskPatch{Completed: &done}); err != nil {
				return nil, fmt.Errorf("error importing task %q: %w", t.Title, err)
			}
		}
		result.Tasks++
	}

	s.log.Info(ctx, "data imported", "user_id", userID, "categories", result.Categories, "tasks", result.Tasks)
	events.Emit(ctx, s.events, s.log, events.Event{Type: events.DataImported, UserID: userID, Payload: result})
	return result, nil
}
