package repository

import (
	"context"
	"errors"

	"todo-be/internal/entities"
)

// ErrNotFound is returned when no record matches the lookup (and owner, where one is given)
var ErrNotFound = errors.New("record not found")

// TodoRepository defines the interface for todo persistence
type TodoRepository interface {
	Create(ctx context.Context, todo *entities.Todo) (*entities.Todo, error)
	GetByID(ctx context.Context, id string) (*entities.Todo, error)
	Update(ctx context.Context, id, userID string, patch entities.TodoUpdate) (*entities.Todo, error)
	Delete(ctx context.Context, id, userID string) (*entities.Todo, error)
	GetAllPaginated(ctx context.Context, page, limit int, userID string) (*entities.TodoPage, error)
	Clear(ctx context.Context) error
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
}
