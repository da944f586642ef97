package domain

import (
	"time"

	"github.com/google/uuid"
)

// Todo is the domain entity for a task. Belongs to exactly one user;
// ownership never changes after creation. DeletedAt != nil means the
// record is soft-deleted and invisible to every operation.
type Todo struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description string
	Completed   bool
	Priority    string
	Category    string
	DueDate     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
