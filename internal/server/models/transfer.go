package models

import "time"

// ExportPayload is the full data set of one user, as served by the export
// endpoint and accepted (in compatible form) by import.
type ExportPayload struct {
	Categories []*Category `json:"categories"`
	Tasks      []*Task     `json:"tasks"`
	ExportDate time.Time   `json:"exportDate"`
}

// ImportResult reports how many rows an import created.
type ImportResult struct {
	Categories int `json:"categories"`
	Tasks      int `json:"tasks"`
}

// Snapshot describes an export stored in object storage.
type Snapshot struct {
	Key        string    `json:"key"`
	URL        string    `json:"url"`
	ExportDate time.Time `json:"exportDate"`
}
