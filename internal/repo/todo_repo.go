package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	dom "github.com/Mieeelll/Taskflow-To-Do-App/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ListFilters are independently optional; zero values mean "not applied".
// Search matches title or description case-insensitively; whitespace-only
// search is ignored.
type ListFilters struct {
	Completed *bool
	Priority  string
	Category  string
	Search    string
}

// TodoPatch carries a partial update: nil fields are left untouched.
type TodoPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *string
	Category    *string
	DueDate     *time.Time
}

// IsEmpty reports whether the patch changes nothing.
func (p TodoPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil &&
		p.Priority == nil && p.Category == nil && p.DueDate == nil
}

// TodoRepo provides todo persistence. Every operation is scoped to the
// owning user and excludes soft-deleted records.
type TodoRepo interface {
	Create(ctx context.Context, t dom.Todo) (dom.Todo, error)
	GetOwned(ctx context.Context, userID, id uuid.UUID) (dom.Todo, error)
	List(ctx context.Context, userID uuid.UUID, f ListFilters, skip, limit int) ([]dom.Todo, int64, error)
	UpdateFields(ctx context.Context, userID, id uuid.UUID, patch TodoPatch) (dom.Todo, error)
	SoftDelete(ctx context.Context, userID, id uuid.UUID) (bool, error)
}

const todoColumns = `id, user_id, title, description, completed, priority, category, due_date, created_at, updated_at, deleted_at`

// PGTodoRepo implements TodoRepo with Postgres.
type PGTodoRepo struct {
	db *pgxpool.Pool
}

func NewPGTodoRepo(db *pgxpool.Pool) *PGTodoRepo {
	return &PGTodoRepo{db: db}
}

func (r *PGTodoRepo) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	query := `
		INSERT INTO todos (user_id, title, description, completed, priority, category, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + todoColumns
	row := r.db.QueryRow(ctx, query,
		t.UserID, t.Title, t.Description, t.Completed, t.Priority, t.Category, t.DueDate)
	return scanTodo(row)
}

func (r *PGTodoRepo) GetOwned(ctx context.Context, userID, id uuid.UUID) (dom.Todo, error) {
	query := `
		SELECT ` + todoColumns + `
		FROM todos WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`
	return scanTodo(r.db.QueryRow(ctx, query, id, userID))
}

func (r *PGTodoRepo) List(ctx context.Context, userID uuid.UUID, f ListFilters, skip, limit int) ([]dom.Todo, int64, error) {
	where := []string{"user_id = $1", "deleted_at IS NULL"}
	args := []interface{}{userID}
	if f.Completed != nil {
		args = append(args, *f.Completed)
		where = append(where, fmt.Sprintf("completed = $%d", len(args)))
	}
	if f.Priority != "" {
		args = append(args, f.Priority)
		where = append(where, fmt.Sprintf("priority = $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM todos WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, skip)
	query := fmt.Sprintf(`
		SELECT %s FROM todos WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, todoColumns, cond, len(args)-1, len(args))
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var list []dom.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, t)
	}
	return list, total, rows.Err()
}

// UpdateFields applies only the fields set in patch, refreshing updated_at,
// in a single atomic UPDATE. The patch must not be empty.
func (r *PGTodoRepo) UpdateFields(ctx context.Context, userID, id uuid.UUID, patch TodoPatch) (dom.Todo, error) {
	set := []string{"updated_at = NOW()"}
	args := []interface{}{id, userID}
	add := func(col string, v interface{}) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Completed != nil {
		add("completed", *patch.Completed)
	}
	if patch.Priority != nil {
		add("priority", *patch.Priority)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.DueDate != nil {
		add("due_date", *patch.DueDate)
	}
	query := `
		UPDATE todos SET ` + strings.Join(set, ", ") + `
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
		RETURNING ` + todoColumns
	return scanTodo(r.db.QueryRow(ctx, query, args...))
}

// SoftDelete marks the record deleted and reports whether it matched an
// owned, not-yet-deleted record.
func (r *PGTodoRepo) SoftDelete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE todos SET deleted_at = NOW() WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTodo(row rowScanner) (dom.Todo, error) {
	var t dom.Todo
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed,
		&t.Priority, &t.Category, &t.DueDate, &t.CreatedAt, &t.UpdatedAt, &t.DeletedAt)
	return t, err
}
