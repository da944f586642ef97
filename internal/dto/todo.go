package dto

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// ErrBadDueDate is surfaced to the client verbatim when due_date fails to parse.
var ErrBadDueDate = errors.New("Invalid due_date format. Use ISO 8601 (e.g., 2024-12-31T23:59:59Z)")

// DueDate parses due_date from JSON as ISO 8601: RFC3339 (trailing Z or
// offset), a naive datetime, or a date only. Naive values are taken as UTC;
// date-only as start of that day in UTC. JSON null or "" leaves it unset.
type DueDate struct{ t *time.Time }

func (d *DueDate) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return ErrBadDueDate
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		d.t = nil
		return nil
	}
	s := strings.TrimSpace(*raw)
	layouts := []string{
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		parsed = parsed.UTC()
		if layout == "2006-01-02" {
			parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
		}
		d.t = &parsed
		return nil
	}
	return ErrBadDueDate
}

// Ptr returns the parsed instant, nil if unset.
func (d DueDate) Ptr() *time.Time { return d.t }

type CreateTodoRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description string  `json:"description" binding:"max=2000"`
	Completed   bool    `json:"completed"`
	Priority    string  `json:"priority"`
	Category    string  `json:"category"`
	DueDate     DueDate `json:"due_date"` // optional: "2024-12-31" or RFC3339
}

// UpdateTodoRequest carries a partial update: nil means "leave unchanged".
type UpdateTodoRequest struct {
	Title       *string  `json:"title" binding:"omitempty,max=255"`
	Description *string  `json:"description" binding:"omitempty,max=2000"`
	Completed   *bool    `json:"completed"`
	Priority    *string  `json:"priority"`
	Category    *string  `json:"category"`
	DueDate     *DueDate `json:"due_date"`
}

// ListTodosQuery binds pagination and filter query params.
type ListTodosQuery struct {
	Skip      int    `form:"skip,default=0" binding:"min=0"`
	Limit     int    `form:"limit,default=50" binding:"min=1,max=100"`
	Completed *bool  `form:"completed"`
	Priority  string `form:"priority"`
	Category  string `form:"category"`
	Search    string `form:"search"`
}

type TodoResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"`
	Category    string     `json:"category"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ListTodosResponse struct {
	Todos []TodoResponse `json:"todos"`
	Total int64          `json:"total"`
}

// ToggleCompleteRequest is the body for PATCH /todos/{id}/toggle-complete.
// Only completed is read; anything else in the body is ignored.
type ToggleCompleteRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

type ToggleCompleteResponse struct {
	ID        string    `json:"id"`
	Completed bool      `json:"completed"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DeleteResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse is the single error envelope every failure uses.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}
