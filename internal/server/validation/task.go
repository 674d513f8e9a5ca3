package validation

import (
	"encoding/json"

	"github.com/dmitrijs2005/taskboard/internal/server/models"
)

// NullableString records whether a JSON field was present and whether it
// was null. UnmarshalJSON only runs for keys present in the document.
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// TaskInput is the body of POST /api/tasks.
type TaskInput struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	CategoryID  int64   `json:"categoryId" validate:"required,gt=0"`
	Priority    *string `json:"priority" validate:"omitnil,oneof=low medium high"`
	DueDate     *string `json:"dueDate" validate:"omitnil,duedate"`
}

// TaskUpdateInput is the body of PUT /api/tasks/:id. Every field is
// optional; dueDate may be null to clear it.
type TaskUpdateInput struct {
	Title       *string        `json:"title" validate:"omitnil,min=1"`
	Description *string        `json:"description"`
	CategoryID  *int64         `json:"categoryId" validate:"omitnil,gt=0"`
	Priority    *string        `json:"priority" validate:"omitnil,oneof=low medium high"`
	DueDate     NullableString `json:"dueDate" validate:"-"`
	Completed   *bool          `json:"completed"`
}

func DecodeTaskInput(body []byte) (*TaskInput, error) {
	in := &TaskInput{}
	if err := decode(body, in, true); err != nil {
		return nil, err
	}
	if err := check(in); err != nil {
		return nil, err
	}
	return in, nil
}

func DecodeTaskUpdate(body []byte) (*TaskUpdateInput, error) {
	in := &TaskUpdateInput{}
	if err := decode(body, in, true); err != nil {
		return nil, err
	}
	if err := check(in); err != nil {
		return nil, err
	}
	if in.DueDate.Value != nil {
		if _, err := NormalizeDueDate(*in.DueDate.Value); err != nil {
			return nil, NewError("dueDate", "must be a date in YYYY-MM-DD format")
		}
	}
	return in, nil
}

// ToTask applies defaults and attributes the task to userID.
func (in *TaskInput) ToTask(userID int64) *models.Task {
	t := &models.Task{
		Title:      in.Title,
		CategoryID: in.CategoryID,
		UserID:     userID,
		Priority:   models.DefaultPriority,
		DueDate:    dueDatePtr(in.DueDate),
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	return t
}

func (in *TaskUpdateInput) Patch() models.TaskPatch {
	return models.TaskPatch{
		Title:       in.Title,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		Priority:    in.Priority,
		DueDateSet:  in.DueDate.Set,
		DueDate:     dueDatePtr(in.DueDate.Value),
		Completed:   in.Completed,
	}
}
