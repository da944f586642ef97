package service

import (
	"context"
	"errors"
	"strings"
	"time"

	dom "github.com/Mieeelll/Taskflow-To-Do-App/internal/domain"
	"github.com/Mieeelll/Taskflow-To-Do-App/internal/repo"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound      = errors.New("Todo not found")
	ErrTitleRequired = errors.New("Title is required")
	ErrTitleEmpty    = errors.New("Title cannot be empty")
)

const (
	defaultPriority = "medium"
	defaultCategory = "Uncategorized"
)

// CreateTodoInput carries validated-at-the-edge create fields; the service
// applies trimming and defaults.
type CreateTodoInput struct {
	Title       string
	Description string
	Completed   bool
	Priority    string
	Category    string
	DueDate     *time.Time
}

// UpdateTodoInput carries a partial update; nil means "leave unchanged".
type UpdateTodoInput struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *string
	Category    *string
	DueDate     *time.Time
}

// TodoService enforces the business rules around todo CRUD: validation,
// defaults, and the owner-blind not-found behavior.
type TodoService struct {
	repo repo.TodoRepo
}

func NewTodoService(r repo.TodoRepo) *TodoService {
	return &TodoService{repo: r}
}

func (s *TodoService) Create(ctx context.Context, userID uuid.UUID, in CreateTodoInput) (dom.Todo, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return dom.Todo{}, ErrTitleRequired
	}
	t := dom.Todo{
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Completed:   in.Completed,
		Priority:    in.Priority,
		Category:    in.Category,
		DueDate:     in.DueDate,
	}
	if t.Priority == "" {
		t.Priority = defaultPriority
	}
	if t.Category == "" {
		t.Category = defaultCategory
	}
	return s.repo.Create(ctx, t)
}

func (s *TodoService) List(ctx context.Context, userID uuid.UUID, f repo.ListFilters, skip, limit int) ([]dom.Todo, int64, error) {
	return s.repo.List(ctx, userID, f, skip, limit)
}

func (s *TodoService) GetByID(ctx context.Context, userID, id uuid.UUID) (dom.Todo, error) {
	t, err := s.repo.GetOwned(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	return t, nil
}

// Update applies only the provided fields. A request that provides nothing
// performs no write and returns the current record.
func (s *TodoService) Update(ctx context.Context, userID, id uuid.UUID, in UpdateTodoInput) (dom.Todo, error) {
	existing, err := s.GetByID(ctx, userID, id)
	if err != nil {
		return dom.Todo{}, err
	}

	patch := repo.TodoPatch{
		Completed: in.Completed,
		Priority:  in.Priority,
		Category:  in.Category,
		DueDate:   in.DueDate,
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return dom.Todo{}, ErrTitleEmpty
		}
		patch.Title = &title
	}
	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		patch.Description = &desc
	}
	if patch.IsEmpty() {
		return existing, nil
	}

	t, err := s.repo.UpdateFields(ctx, userID, id, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	return t, nil
}

// ToggleComplete sets the completed flag, ignoring every other field.
func (s *TodoService) ToggleComplete(ctx context.Context, userID, id uuid.UUID, completed bool) (dom.Todo, error) {
	t, err := s.repo.UpdateFields(ctx, userID, id, repo.TodoPatch{Completed: &completed})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	return t, nil
}

// Delete soft-deletes the record. Deleting again, or deleting someone
// else's record, is ErrNotFound.
func (s *TodoService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	matched, err := s.repo.SoftDelete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !matched {
		return ErrNotFound
	}
	return nil
}
