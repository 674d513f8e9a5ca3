package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"gorm.io/gorm"
)

// Row is the gorm mapping of the tasks table.
type Row struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"not null;default:''"`
	CategoryID  int64     `gorm:"not null;index"`
	UserID      int64     `gorm:"not null;index"`
	Completed   bool      `gorm:"not null;default:false"`
	Priority    string    `gorm:"not null;default:medium"`
	DueDate     *string   `gorm:"column:due_date"`
	CreatedAt   time.Time `gorm:"not null;index"`
}

func (Row) TableName() string { return "tasks" }

func (r Row) model() *models.Task {
	return &models.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		UserID:      r.UserID,
		Completed:   r.Completed,
		Priority:    r.Priority,
		DueDate:     r.DueDate,
		CreatedAt:   r.CreatedAt,
	}
}

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) find(db *gorm.DB) ([]*models.Task, error) {
	var rows []Row
	if err := db.Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	result := make([]*models.Task, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.model())
	}
	return result, nil
}

func (r *GormRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Task, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *GormRepository) ListByCategoryAndUser(ctx context.Context, categoryID, userID int64) ([]*models.Task, error) {
	return r.find(r.db.WithContext(ctx).Where("category_id = ? AND user_id = ?", categoryID, userID))
}

func (r *GormRepository) SearchByUser(ctx context.Context, userID int64, q string) ([]*models.Task, error) {
	return r.find(r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("(instr(lower(title), lower(?)) > 0 OR instr(lower(description), lower(?)) > 0)", q, q))
}

func (r *GormRepository) Get(ctx context.Context, id int64) (*models.Task, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormRepository) get(db *gorm.DB, id int64) (*models.Task, error) {
	var row Row
	if err := db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return row.model(), nil
}

func (r *GormRepository) Create(ctx context.Context, t *models.Task) (*models.Task, error) {
	row := Row{
		Title:       t.Title,
		Description: t.Description,
		CategoryID:  t.CategoryID,
		UserID:      t.UserID,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	t.ID = row.ID
	t.Completed = false
	t.CreatedAt = row.CreatedAt
	return t, nil
}

func (r *GormRepository) Update(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	var out *models.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := r.get(tx, id)
		if err != nil {
			return err
		}
		patch.Apply(t)

		updates := map[string]any{
			"title":       t.Title,
			"description": t.Description,
			"category_id": t.CategoryID,
			"priority":    t.Priority,
			"completed":   t.Completed,
			"due_date":    t.DueDate,
		}
		if err := tx.Model(&Row{ID: id}).Updates(updates).Error; err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&Row{}, id)
	if res.Error != nil {
		return fmt.Errorf("db error: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrorNotFound
	}
	return nil
}
