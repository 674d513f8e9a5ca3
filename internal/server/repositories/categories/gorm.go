package categories

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"gorm.io/gorm"
)

// Row is the gorm mapping of the categories table.
type Row struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"not null"`
	Color       string `gorm:"not null;default:blue"`
	Description string `gorm:"not null;default:''"`
	UserID      int64  `gorm:"not null;index"`
}

func (Row) TableName() string { return "categories" }

func (r Row) model() *models.Category {
	return &models.Category{ID: r.ID, Name: r.Name, Color: r.Color, Description: r.Description, UserID: r.UserID}
}

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Category, error) {
	var rows []Row
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	result := make([]*models.Category, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.model())
	}
	return result, nil
}

func (r *GormRepository) Get(ctx context.Context, id int64) (*models.Category, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormRepository) get(db *gorm.DB, id int64) (*models.Category, error) {
	var row Row
	if err := db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return row.model(), nil
}

func (r *GormRepository) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	row := Row{Name: c.Name, Color: c.Color, Description: c.Description, UserID: c.UserID}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	c.ID = row.ID
	return c, nil
}

func (r *GormRepository) Update(ctx context.Context, id int64, patch models.CategoryPatch) (*models.Category, error) {
	var out *models.Category
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := r.get(tx, id)
		if err != nil {
			return err
		}
		patch.Apply(c)

		updates := map[string]any{"name": c.Name, "color": c.Color, "description": c.Description}
		if err := tx.Model(&Row{ID: id}).Updates(updates).Error; err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the category and its tasks in one transaction. The tasks
// table is addressed by name so this package does not depend on the tasks
// repository.
func (r *GormRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM tasks WHERE category_id = ?", id).Error; err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		res := tx.Delete(&Row{}, id)
		if res.Error != nil {
			return fmt.Errorf("db error: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return common.ErrorNotFound
		}
		return nil
	})
}
