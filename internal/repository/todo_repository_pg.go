package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"todo-be/internal/apperror"
	"todo-be/internal/entities"
)

const todoColumns = `id, user_id, content, due_date, status, created_at, updated_at`

type pgTodoRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewPGTodoRepository creates a todo repository backed by PostgreSQL
func NewPGTodoRepository(db *sql.DB) TodoRepository {
	return &pgTodoRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Create inserts a new todo into the database
func (r *pgTodoRepository) Create(ctx context.Context, todo *entities.Todo) (*entities.Todo, error) {
	query := `
		INSERT INTO todos (` + todoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + todoColumns

	row := r.db.QueryRowContext(ctx, query,
		todo.ID, todo.UserID, todo.Content, todo.DueDate, string(todo.Status), todo.CreatedAt, todo.UpdatedAt,
	)
	created, err := scanTodo(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.Storage(fmt.Sprintf("todo with ID %s already exists", todo.ID), err)
		}
		return nil, apperror.Storage("failed to create todo", err)
	}
	return created, nil
}

// GetByID finds a todo by ID regardless of owner
func (r *pgTodoRepository) GetByID(ctx context.Context, id string) (*entities.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1`

	todo, err := scanTodo(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, apperror.Storage("failed to get todo", err)
	}
	return todo, nil
}

// Update applies the non-nil patch fields to the todo owned by userID
func (r *pgTodoRepository) Update(ctx context.Context, id, userID string, patch entities.TodoUpdate) (*entities.Todo, error) {
	query := `
		UPDATE todos
		SET content = COALESCE($3, content),
			status = COALESCE($4, status),
			due_date = COALESCE($5, due_date),
			updated_at = $6
		WHERE id = $1 AND user_id = $2
		RETURNING ` + todoColumns

	var status *string
	if patch.Status != nil {
		s := string(*patch.Status)
		status = &s
	}

	todo, err := scanTodo(r.db.QueryRowContext(ctx, query, id, userID, patch.Content, status, patch.DueDate, r.now()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, apperror.Storage("failed to update todo", err)
	}
	return todo, nil
}

// Delete removes the todo owned by userID and returns it
func (r *pgTodoRepository) Delete(ctx context.Context, id, userID string) (*entities.Todo, error) {
	query := `DELETE FROM todos WHERE id = $1 AND user_id = $2 RETURNING ` + todoColumns

	todo, err := scanTodo(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, apperror.Storage("failed to delete todo", err)
	}
	return todo, nil
}

// GetAllPaginated returns one page of the user's todos, newest first
func (r *pgTodoRepository) GetAllPaginated(ctx context.Context, page, limit int, userID string) (*entities.TodoPage, error) {
	if limit < 1 {
		limit = 1
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, apperror.Storage("failed to count todos", err)
	}

	totalPages, safePage, offset := pageBounds(total, page, limit)
	result := &entities.TodoPage{
		Items:      []entities.Todo{},
		Total:      total,
		Page:       safePage,
		TotalPages: totalPages,
	}
	if total == 0 {
		return result, nil
	}

	query := `
		SELECT ` + todoColumns + `
		FROM todos
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, apperror.Storage("failed to get todos", err)
	}
	defer rows.Close()

	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, apperror.Storage("failed to scan todo", err)
		}
		result.Items = append(result.Items, *todo)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Storage("error iterating todos", err)
	}

	return result, nil
}

// Clear removes every todo of every user
func (r *pgTodoRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM todos`); err != nil {
		return apperror.Storage("failed to clear todos", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (*entities.Todo, error) {
	var (
		todo    entities.Todo
		dueDate sql.NullString
		status  string
	)
	err := row.Scan(
		&todo.ID,
		&todo.UserID,
		&todo.Content,
		&dueDate,
		&status,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dueDate.Valid {
		todo.DueDate = &dueDate.String
	}
	todo.Status = entities.TodoStatus(status)
	todo.CreatedAt = todo.CreatedAt.UTC()
	todo.UpdatedAt = todo.UpdatedAt.UTC()
	return &todo, nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint violation (23505)
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
