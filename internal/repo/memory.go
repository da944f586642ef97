package repo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	dom "github.com/Mieeelll/Taskflow-To-Do-App/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MemoryTodoRepo is an in-memory TodoRepo. A throwaway stand-in for local
// testing only, never production persistence. It returns pgx.ErrNoRows on
// misses so the service layer maps errors the same way as with Postgres.
type MemoryTodoRepo struct {
	mu    sync.Mutex
	todos map[uuid.UUID]dom.Todo
}

func NewMemoryTodoRepo() *MemoryTodoRepo {
	return &MemoryTodoRepo{todos: make(map[uuid.UUID]dom.Todo)}
}

func (r *MemoryTodoRepo) Create(_ context.Context, t dom.Todo) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	t.ID = uuid.New()
	t.CreatedAt = now
	t.UpdatedAt = now
	t.DeletedAt = nil
	r.todos[t.ID] = t
	return t, nil
}

func (r *MemoryTodoRepo) GetOwned(_ context.Context, userID, id uuid.UUID) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.todos[id]
	if !ok || t.UserID != userID || t.DeletedAt != nil {
		return dom.Todo{}, pgx.ErrNoRows
	}
	return t, nil
}

func (r *MemoryTodoRepo) List(_ context.Context, userID uuid.UUID, f ListFilters, skip, limit int) ([]dom.Todo, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []dom.Todo
	search := strings.ToLower(strings.TrimSpace(f.Search))
	for _, t := range r.todos {
		if t.UserID != userID || t.DeletedAt != nil {
			continue
		}
		if f.Completed != nil && t.Completed != *f.Completed {
			continue
		}
		if f.Priority != "" && t.Priority != f.Priority {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		matched = append(matched, t)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	if skip >= len(matched) {
		return nil, total, nil
	}
	matched = matched[skip:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (r *MemoryTodoRepo) UpdateFields(_ context.Context, userID, id uuid.UUID, patch TodoPatch) (dom.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.todos[id]
	if !ok || t.UserID != userID || t.DeletedAt != nil {
		return dom.Todo{}, pgx.ErrNoRows
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.Category != nil {
		t.Category = *patch.Category
	}
	if patch.DueDate != nil {
		due := *patch.DueDate
		t.DueDate = &due
	}
	t.UpdatedAt = time.Now().UTC()
	r.todos[id] = t
	return t, nil
}

func (r *MemoryTodoRepo) SoftDelete(_ context.Context, userID, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.todos[id]
	if !ok || t.UserID != userID || t.DeletedAt != nil {
		return false, nil
	}
	now := time.Now().UTC()
	t.DeletedAt = &now
	r.todos[id] = t
	return true, nil
}

// MemoryUserRepo is an in-memory UserRepo for tests.
type MemoryUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]dom.User
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: make(map[uuid.UUID]dom.User)}
}

func (r *MemoryUserRepo) Create(_ context.Context, username, email, passwordHash string) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	u := dom.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.users[u.ID] = u
	return u, nil
}

func (r *MemoryUserRepo) GetByEmail(_ context.Context, email string) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (r *MemoryUserRepo) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) || strings.EqualFold(u.Username, username) {
			return true, nil
		}
	}
	return false, nil
}
