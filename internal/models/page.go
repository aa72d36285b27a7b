package models

// TaskPage is one bounded slice of a search result. Page numbers are
// zero-indexed.
type TaskPage struct {
	Content       []Task `json:"content"`
	Page          int    `json:"page"`
	Size          int    `json:"size"`
	TotalElements int64  `json:"total_elements"`
	TotalPages    int    `json:"total_pages"`
}
