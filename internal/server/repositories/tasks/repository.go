package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/server/models"
)

// Repository persists tasks. Every list is ordered newest first
// (created_at DESC, id DESC).
type Repository interface {
	ListByUser(ctx context.Context, userID int64) ([]*models.Task, error)
	ListByCategoryAndUser(ctx context.Context, categoryID, userID int64) ([]*models.Task, error)
	// SearchByUser matches query case-insensitively as a substring of the
	// title or the description.
	SearchByUser(ctx context.Context, userID int64, query string) ([]*models.Task, error)
	Get(ctx context.Context, id int64) (*models.Task, error)
	// Create assigns id and createdAt and always stores completed=false.
	Create(ctx context.Context, t *models.Task) (*models.Task, error)
	Update(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
}
