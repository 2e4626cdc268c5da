package repository

import (
	"context"
	"fmt"
	"time"

	"todo-be/internal/apperror"
	"todo-be/internal/entities"
	"todo-be/internal/storage"
)

type todoRepository struct {
	store *storage.JSONStore[entities.Todo]
	now   func() time.Time
}

// NewTodoRepository creates a todo repository over a flat-file store
func NewTodoRepository(store *storage.JSONStore[entities.Todo]) TodoRepository {
	return &todoRepository{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create appends a todo, failing if its ID is already taken
func (r *todoRepository) Create(_ context.Context, todo *entities.Todo) (*entities.Todo, error) {
	err := r.store.Update(func(todos []entities.Todo) ([]entities.Todo, error) {
		for _, t := range todos {
			if t.ID == todo.ID {
				return nil, apperror.Storage(fmt.Sprintf("todo with ID %s already exists", todo.ID), nil)
			}
		}
		return append(todos, *todo), nil
	})
	if err != nil {
		return nil, err
	}

	created := *todo
	return &created, nil
}

// GetByID returns the first todo with the given ID regardless of owner
func (r *todoRepository) GetByID(_ context.Context, id string) (*entities.Todo, error) {
	todos, err := r.store.ReadAll()
	if err != nil {
		return nil, err
	}
	for i := range todos {
		if todos[i].ID == id {
			return &todos[i], nil
		}
	}
	return nil, ErrNotFound
}

// Update merges the supplied fields into the todo owned by userID and refreshes UpdatedAt
func (r *todoRepository) Update(_ context.Context, id, userID string, patch entities.TodoUpdate) (*entities.Todo, error) {
	var updated entities.Todo
	err := r.store.Update(func(todos []entities.Todo) ([]entities.Todo, error) {
		i := indexOwned(todos, id, userID)
		if i < 0 {
			return nil, ErrNotFound
		}
		patch.Apply(&todos[i])
		todos[i].UpdatedAt = r.now()
		updated = todos[i]
		return todos, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the todo owned by userID and returns it
func (r *todoRepository) Delete(_ context.Context, id, userID string) (*entities.Todo, error) {
	var deleted entities.Todo
	err := r.store.Update(func(todos []entities.Todo) ([]entities.Todo, error) {
		i := indexOwned(todos, id, userID)
		if i < 0 {
			return nil, ErrNotFound
		}
		deleted = todos[i]
		return append(todos[:i], todos[i+1:]...), nil
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

// GetAllPaginated returns one page of the user's todos, newest first
func (r *todoRepository) GetAllPaginated(_ context.Context, page, limit int, userID string) (*entities.TodoPage, error) {
	todos, err := r.store.ReadAll()
	if err != nil {
		return nil, err
	}
	return paginate(todos, page, limit, userID), nil
}

// Clear removes every todo of every user
func (r *todoRepository) Clear(_ context.Context) error {
	return r.store.WriteAll(nil)
}

func indexOwned(todos []entities.Todo, id, userID string) int {
	for i := range todos {
		if todos[i].ID == id && todos[i].UserID == userID {
			return i
		}
	}
	return -1
}
