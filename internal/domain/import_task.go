package domain

import "time"

type ImportTaskStatus string

const (
	ImportStatusQueued     ImportTaskStatus = "queued"
	ImportStatusProcessing ImportTaskStatus = "processing"
	ImportStatusCompleted  ImportTaskStatus = "completed"
	ImportStatusFailed     ImportTaskStatus = "failed"
)

// ImportTask tracks one catalog import from a spreadsheet.
type ImportTask struct {
	ID            string           `json:"id"`
	Status        ImportTaskStatus `json:"status"`
	SpreadsheetID string           `json:"spreadsheetId"`
	ImportedCount int              `json:"importedCount"`
	SkippedCount  int              `json:"skippedCount"`
	ErrorMessage  string           `json:"errorMessage,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}
