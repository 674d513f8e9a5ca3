package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/server/events"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskboard/internal/server/validation"
)

type CategoryService struct {
	repomanager repomanager.RepositoryManager
	events      events.Publisher
	log         logging.Logger
}

func NewCategoryService(m repomanager.RepositoryManager, pub events.Publisher, log logging.Logger) *CategoryService {
	return &CategoryService{repomanager: m, events: pub, log: log}
}

func (s *CategoryService) List(ctx context.Context, userID int64) ([]*models.Category, error) {
	list, err := s.repomanager.Categories().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}
	return list, nil
}

func (s *CategoryService) Create(ctx context.Context, userID int64, in *validation.CategoryInput) (*models.Category, error) {
	c, err := s.repomanager.Categories().Create(ctx, in.ToCategory(userID))
	if err != nil {
		return nil, fmt.Errorf("error creating category: %w", err)
	}

	events.Emit(ctx, s.events, s.log, events.Event{Type: events.CategoryCreated, UserID: userID, EntityID: c.ID, Payload: c})
	return c, nil
}

// Update applies a partial update to a category owned by userID. Categories
// of other users are reported as common.ErrorNotFound.
func (s *CategoryService) Update(ctx context.Context, userID, id int64, in *validation.CategoryUpdateInput) (*models.Category, error) {
	current, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	patch := in.Patch()
	if patch.Empty() {
		return current, nil
	}

	c, err := s.repomanager.Categories().Update(ctx, id, patch)
	if err != nil {
		return nil, wrapRepoErr("error updating category", err)
	}

	events.Emit(ctx, s.events, s.log, events.Event{Type: events.CategoryUpdated, UserID: userID, EntityID: c.ID, Payload: c})
	return c, nil
}

// Delete removes the category and all of its tasks.
func (s *CategoryService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repomanager.Categories().Delete(ctx, id); err != nil {
		return wrapRepoErr("error deleting category", err)
	}

	s.log.Info(ctx, "category deleted", "user_id", userID, "category_id", id)
	events.Emit(ctx, s.events, s.log, events.Event{Type: events.CategoryDeleted, UserID: userID, EntityID: id})
	return nil
}

func (s *CategoryService) owned(ctx context.Context, userID, id int64) (*models.Category, error) {
	c, err := s.repomanager.Categories().Get(ctx, id)
	if err != nil {
		return nil, wrapRepoErr("error loading category", err)
	}
	if c.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return c, nil
}
