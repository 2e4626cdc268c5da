package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-be/internal/apperror"
	"todo-be/internal/entities"
)

var todoRowColumns = []string{"id", "user_id", "content", "due_date", "status", "created_at", "updated_at"}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestPGTodoRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGTodoRepository(db)

	due := "2030-01-01"
	todo := newTodo("t1", "u1", baseTime)
	todo.DueDate = &due

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+todos`).
		WithArgs("t1", "u1", "content t1", "2030-01-01", "Unfinished", baseTime, baseTime).
		WillReturnRows(sqlmock.NewRows(todoRowColumns).
			AddRow("t1", "u1", "content t1", "2030-01-01", "Unfinished", baseTime, baseTime))

	got, err := repo.Create(context.Background(), todo)
	require.NoError(t, err)
	assert.Equal(t, "t1", got.ID)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, "2030-01-01", *got.DueDate)
	assert.Equal(t, entities.StatusUnfinished, got.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGTodoRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGTodoRepository(db)

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+todos`).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), newTodo("t1", "u1", baseTime))
	require.Error(t, err)
	assert.True(t, apperror.IsStorage(err))
	assert.Contains(t, err.Error(), "todo with ID t1 already exists")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGTodoRepository_GetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGTodoRepository(db)

	mock.ExpectQuery(`(?s)^SELECT\s+id,.*FROM\s+todos\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGTodoRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGTodoRepository(db).(*pgTodoRepository)
	later := baseTime.Add(time.Hour)
	repo.now = func() time.Time { return later }

	done := entities.StatusDone
	mock.ExpectQuery(`(?s)^UPDATE\s+todos\s+SET\s+content\s*=\s*COALESCE\(\$3,\s*content\).*WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2`).
		WithArgs("t1", "u1", nil, "Done", nil, later).
		WillReturnRows(sqlmock.NewRows(todoRowColumns).
			AddRow("t1", "u1", "content t1", nil, "Done", baseTime, later))

	got, err := repo.Update(context.Background(), "t1", "u1", entities.TodoUpdate{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, entities.StatusDone, got.Status)
	assert.Nil(t, got.DueDate)
	assert.True(t, got.UpdatedAt.Equal(later))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGTodoRepository_UpdateForeign(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGTodoRepository(db)

	mock.ExpectQuery(`(?s)^UPDATE\s+todos`).WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), "t1", "u2", entities.TodoUpdate{})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGTodoRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGTodoRepository(db)

	mock.ExpectQuery(`(?s)^DELETE\s+FROM\s+todos\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s+RETURNING`).
		WithArgs("t1", "u1").
		WillReturnRows(sqlmock.NewRows(todoRowColumns).
			AddRow("t1", "u1", "content t1", nil, "Unfinished", baseTime, baseTime))

	got, err := repo.Delete(context.Background(), "t1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "t1", got.ID)

	mock.ExpectQuery(`(?s)^DELETE\s+FROM\s+todos`).
		WithArgs("t1", "u2").
		WillReturnError(sql.ErrNoRows)

	_, err = repo.Delete(context.Background(), "t1", "u2")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGTodoRepository_GetAllPaginated(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGTodoRepository(db)

	mock.ExpectQuery(`(?s)^SELECT\s+COUNT\(\*\)\s+FROM\s+todos\s+WHERE\s+user_id\s*=\s*\$1`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`(?s)ORDER\s+BY\s+created_at\s+DESC.*LIMIT\s+\$2\s+OFFSET\s+\$3`).
		WithArgs("u1", 2, 2).
		WillReturnRows(sqlmock.NewRows(todoRowColumns).
			AddRow("t0", "u1", "oldest", nil, "Unfinished", baseTime, baseTime))

	got, err := repo.GetAllPaginated(context.Background(), 5, 2, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 2, got.TotalPages)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "t0", got.Items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGTodoRepository_GetAllPaginatedEmptySkipsSelect(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGTodoRepository(db)

	mock.ExpectQuery(`(?s)^SELECT\s+COUNT\(\*\)`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	got, err := repo.GetAllPaginated(context.Background(), 1, 10, "u1")
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 0, got.TotalPages)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGTodoRepository_Clear(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGTodoRepository(db)

	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+todos$`).WillReturnResult(sqlmock.NewResult(0, 4))
	require.NoError(t, repo.Clear(context.Background()))

	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+todos$`).WillReturnError(errors.New("db down"))
	err := repo.Clear(context.Background())
	assert.True(t, apperror.IsStorage(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGUserRepository_CreateAndGetByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGUserRepository(db)
	userCols := []string{"id", "email", "password_hash", "created_at", "updated_at"}

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+users`).
		WithArgs("u1", "a@x.com", "hash", baseTime, baseTime).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("u1", "a@x.com", "hash", baseTime, baseTime))

	created, err := repo.Create(context.Background(), &entities.User{
		ID: "u1", Email: "a@x.com", Password: "hash", CreatedAt: baseTime, UpdatedAt: baseTime,
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", created.ID)

	mock.ExpectQuery(`(?s)^SELECT.*FROM\s+users\s+WHERE\s+email\s*=\s*\$1`).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("u1", "a@x.com", "hash", baseTime, baseTime))

	got, err := repo.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "hash", got.Password)

	mock.ExpectQuery(`(?s)^SELECT.*FROM\s+users`).
		WithArgs("b@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err = repo.GetByEmail(context.Background(), "b@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGUserRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGUserRepository(db)

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+users`).WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), &entities.User{ID: "u1", Email: "a@x.com"})
	require.Error(t, err)
	assert.True(t, apperror.IsStorage(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
