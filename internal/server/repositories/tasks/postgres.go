package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/dbx"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
)

const columns = `id, title, description, category_id, user_id, completed, priority, due_date, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*models.Task, error) {
	t := &models.Task{}
	var due sql.NullString
	if err := s.Scan(&t.ID, &t.Title, &t.Description, &t.CategoryID, &t.UserID,
		&t.Completed, &t.Priority, &due, &t.CreatedAt); err != nil {
		return nil, err
	}
	if due.Valid {
		t.DueDate = &due.String
	}
	return t, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Task, error) {
	query := `SELECT ` + columns + ` FROM tasks
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 `
	return r.list(ctx, query, userID)
}

func (r *PostgresRepository) ListByCategoryAndUser(ctx context.Context, categoryID, userID int64) ([]*models.Task, error) {
	query := `SELECT ` + columns + ` FROM tasks
		 WHERE category_id = $1 AND user_id = $2
		 ORDER BY created_at DESC, id DESC
		 `
	return r.list(ctx, query, categoryID, userID)
}

func (r *PostgresRepository) SearchByUser(ctx context.Context, userID int64, q string) ([]*models.Task, error) {
	query := `SELECT ` + columns + ` FROM tasks
		 WHERE user_id = $1
		   AND (strpos(lower(title), lower($2)) > 0 OR strpos(lower(description), lower($2)) > 0)
		 ORDER BY created_at DESC, id DESC
		 `
	return r.list(ctx, query, userID, q)
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Task, error) {
	query := `SELECT ` + columns + ` FROM tasks
		 WHERE id = $1
		 `

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}

func (r *PostgresRepository) Create(ctx context.Context, t *models.Task) (*models.Task, error) {
	query :=
		`INSERT INTO tasks (title, description, category_id, user_id, priority, due_date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, completed, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		t.Title, t.Description, t.CategoryID, t.UserID, t.Priority, t.DueDate).
		Scan(&t.ID, &t.Completed, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}

// Update changes only the fields set in patch. due_date is replaced whenever
// the patch carries it, including with NULL.
func (r *PostgresRepository) Update(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	query :=
		`UPDATE tasks
		 SET title = COALESCE($2, title),
		     description = COALESCE($3, description),
		     category_id = COALESCE($4, category_id),
		     priority = COALESCE($5, priority),
		     completed = COALESCE($6, completed),
		     due_date = CASE WHEN $7::boolean THEN $8::text ELSE due_date END
		 WHERE id = $1
		 RETURNING ` + columns

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id,
		patch.Title, patch.Description, patch.CategoryID, patch.Priority, patch.Completed,
		patch.DueDateSet, patch.DueDate))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
