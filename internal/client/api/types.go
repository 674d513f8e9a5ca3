package api

import "time"

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullname"`
}

type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CategoryID  int64     `json:"categoryId"`
	Completed   bool      `json:"completed"`
	Priority    string    `json:"priority"`
	DueDate     *string   `json:"dueDate"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TaskUpdate is a partial task update; nil fields are left unchanged.
type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	CategoryID  *int64  `json:"categoryId,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
	Priority    *string `json:"priority,omitempty"`
}

type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

type ImportResult struct {
	Message    string `json:"message"`
	Categories int    `json:"categories"`
	Tasks      int    `json:"tasks"`
}

// TaskFilter narrows ListTasks. Zero values mean "not set".
type TaskFilter struct {
	Search     string
	CategoryID int64
}

type Snapshot struct {
	Key        string    `json:"key"`
	URL        string    `json:"url"`
	ExportDate time.Time `json:"exportDate"`
}
