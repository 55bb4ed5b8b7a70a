package models

// Entry represents a submitted transaction record.
type Entry struct {
	ID          int64   `json:"id"`
	Value       string  `json:"value"`
	Description string  `json:"description"`
	Status      *string `json:"status,omitempty"`
}
