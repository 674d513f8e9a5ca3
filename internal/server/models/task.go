package models

import "time"

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	DefaultPriority = PriorityMedium
)

// DateLayout is the calendar-date format used for due dates.
const DateLayout = "2006-01-02"

// Task is a single to-do item. DueDate holds a calendar date in DateLayout
// form, or nil when the task has no due date.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CategoryID  int64     `json:"categoryId"`
	UserID      int64     `json:"userId"`
	Completed   bool      `json:"completed"`
	Priority    string    `json:"priority"`
	DueDate     *string   `json:"dueDate"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TaskPatch carries a partial task update. Nil pointers are left untouched.
// DueDateSet distinguishes "clear the due date" (DueDateSet with a nil
// DueDate) from "leave it alone".
type TaskPatch struct {
	Title       *string
	Description *string
	CategoryID  *int64
	Priority    *string
	DueDateSet  bool
	DueDate     *string
	Completed   *bool
}

// Apply copies the set fields of p onto t. ID, UserID and CreatedAt are
// never touched.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.CategoryID != nil {
		t.CategoryID = *p.CategoryID
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDateSet {
		t.DueDate = cloneString(p.DueDate)
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.CategoryID == nil &&
		p.Priority == nil && !p.DueDateSet && p.Completed == nil
}

// TaskStats summarizes a user's tasks.
type TaskStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// Clone returns a deep copy of t.
func (t *Task) Clone() *Task {
	c := *t
	c.DueDate = cloneString(t.DueDate)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
