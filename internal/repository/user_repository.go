package repository

import (
	"context"

	"todo-be/internal/apperror"
	"todo-be/internal/entities"
	"todo-be/internal/storage"
)

type userRepository struct {
	store *storage.JSONStore[entities.User]
}

// NewUserRepository creates a user repository over a flat-file store
func NewUserRepository(store *storage.JSONStore[entities.User]) UserRepository {
	return &userRepository{store: store}
}

// Create appends a user, failing if its ID is already taken
func (r *userRepository) Create(_ context.Context, user *entities.User) (*entities.User, error) {
	err := r.store.Update(func(users []entities.User) ([]entities.User, error) {
		for _, u := range users {
			if u.ID == user.ID {
				return nil, apperror.Storage("user with ID already exists", nil)
			}
		}
		return append(users, *user), nil
	})
	if err != nil {
		return nil, err
	}

	created := *user
	return &created, nil
}

// GetByEmail finds a user by exact, case-sensitive email
func (r *userRepository) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	users, err := r.store.ReadAll()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}
