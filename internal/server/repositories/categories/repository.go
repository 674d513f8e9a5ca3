package categories

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/server/models"
)

// Repository persists categories. Delete removes the category together with
// every task that references it, atomically.
type Repository interface {
	ListByUser(ctx context.Context, userID int64) ([]*models.Category, error)
	Get(ctx context.Context, id int64) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	Update(ctx context.Context, id int64, patch models.CategoryPatch) (*models.Category, error)
	Delete(ctx context.Context, id int64) error
}
