package validation

import "github.com/dmitrijs2005/taskboard/internal/server/models"

// ImportCategory is one category of an import payload. ID is the
// identifier the category had in the exporting account; it is only used to
// re-link tasks.
type ImportCategory struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name" validate:"required"`
	Color       string  `json:"color" validate:"omitempty,oneof=blue green purple red amber"`
	Description *string `json:"description"`
}

// ImportTask is one task of an import payload.
type ImportTask struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	CategoryID  int64   `json:"categoryId" validate:"required"`
	Priority    string  `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *string `json:"dueDate" validate:"omitnil,duedate"`
	Completed   bool    `json:"completed"`
}

// ImportInput is the body of POST /api/import. It accepts the document
// produced by the export endpoint; fields it does not list (ids of tasks,
// userId, createdAt, exportDate) are ignored.
type ImportInput struct {
	Categories []ImportCategory `json:"categories" validate:"dive"`
	Tasks      []ImportTask     `json:"tasks" validate:"dive"`
}

func DecodeImport(body []byte) (*ImportInput, error) {
	in := &ImportInput{}
	if err := decode(body, in, false); err != nil {
		return nil, err
	}
	if err := check(in); err != nil {
		return nil, err
	}
	return in, nil
}

// ToCategory builds the category to insert for userID.
func (in ImportCategory) ToCategory(userID int64) *models.Category {
	c := &models.Category{Name: in.Name, Color: in.Color, UserID: userID}
	if c.Color == "" {
		c.Color = models.DefaultColor
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	return c
}

// ToTask builds the task to insert for userID in categoryID.
func (in ImportTask) ToTask(userID, categoryID int64) *models.Task {
	t := &models.Task{
		Title:      in.Title,
		CategoryID: categoryID,
		UserID:     userID,
		Priority:   in.Priority,
		DueDate:    dueDatePtr(in.DueDate),
	}
	if t.Priority == "" {
		t.Priority = models.DefaultPriority
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	return t
}
