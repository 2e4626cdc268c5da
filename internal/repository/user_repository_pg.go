package repository

import (
	"context"
	"database/sql"
	"errors"

	"todo-be/internal/apperror"
	"todo-be/internal/entities"
)

type pgUserRepository struct {
	db *sql.DB
}

// NewPGUserRepository creates a user repository backed by PostgreSQL
func NewPGUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

// Create inserts a new user into the database
func (r *pgUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	query := `
		INSERT INTO users (id, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, email, password_hash, created_at, updated_at
	`

	var created entities.User
	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Email, user.Password, user.CreatedAt, user.UpdatedAt,
	).Scan(
		&created.ID,
		&created.Email,
		&created.Password,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.Storage("user with ID already exists", err)
		}
		return nil, apperror.Storage("failed to create user", err)
	}

	created.CreatedAt = created.CreatedAt.UTC()
	created.UpdatedAt = created.UpdatedAt.UTC()
	return &created, nil
}

// GetByEmail finds the oldest user with exactly this email
func (r *pgUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1
		ORDER BY created_at
		LIMIT 1
	`

	var user entities.User
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, apperror.Storage("failed to get user", err)
	}

	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()
	return &user, nil
}
