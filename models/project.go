package models

// Project groups tasks. TaskCount is derived from the task collection on
// every read and is never persisted.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"createdAt"`
	TaskCount   int    `json:"taskCount"`
}
