package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"todo-be/internal/apperror"
	"todo-be/internal/cache"
	"todo-be/internal/dates"
	"todo-be/internal/entities"
	"todo-be/internal/models"
	"todo-be/internal/repository"
)

// TodoService defines the interface for todo business logic
type TodoService interface {
	ListPaginated(ctx context.Context, page, limit int, userID string) (*models.TodoListResponse, error)
	Create(ctx context.Context, content, userID string, dueDate *string) (*entities.Todo, error)
	Update(ctx context.Context, id string, updates entities.TodoUpdate, userID string) (*entities.Todo, error)
	Delete(ctx context.Context, id, userID string) (*entities.Todo, error)
	GetByID(ctx context.Context, id, userID string) (*entities.Todo, error)
}

type todoService struct {
	todoRepo repository.TodoRepository
	cache    cache.Cache // nil disables page caching
	cacheTTL time.Duration
	group    singleflight.Group
	logger   *slog.Logger
	now      func() time.Time
}

// NewTodoService creates a new todo service. cacheClient may be nil.
func NewTodoService(todoRepo repository.TodoRepository, cacheClient cache.Cache, cacheTTL time.Duration, logger *slog.Logger) TodoService {
	return &todoService{
		todoRepo: todoRepo,
		cache:    cacheClient,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ListPaginated returns one page of the user's todos with pagination metadata
func (s *todoService) ListPaginated(ctx context.Context, page, limit int, userID string) (*models.TodoListResponse, error) {
	if s.cache == nil {
		return s.loadPage(ctx, page, limit, userID)
	}

	version, err := s.pageVersion(ctx, userID)
	if err != nil {
		s.logger.WarnContext(ctx, "todo page cache version read failed", "user_id", userID, "error", err)
		return s.loadPage(ctx, page, limit, userID)
	}

	key := cache.TodoPageKey(userID, version, page, limit)
	var cached models.TodoListResponse
	if err := s.cache.GetJSON(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.WarnContext(ctx, "todo page cache read failed", "key", key, "error", err)
	}

	// The fill is shared by every waiter on key, so it must outlive the caller that started it.
	fillCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (interface{}, error) {
		resp, err := s.loadPage(fillCtx, page, limit, userID)
		if err != nil {
			return nil, err
		}
		if err := s.cache.SetJSON(fillCtx, key, resp, s.cacheTTL); err != nil {
			s.logger.WarnContext(fillCtx, "todo page cache write failed", "key", key, "error", err)
		}
		return resp, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.TodoListResponse), nil
	}
}

// pageVersion reads the user's cache version. A missing counter is version 0.
func (s *todoService) pageVersion(ctx context.Context, userID string) (int64, error) {
	raw, err := s.cache.Get(ctx, cache.TodoVersionKey(userID))
	if errors.Is(err, cache.ErrCacheMiss) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(raw, 10, 64)
}

func (s *todoService) loadPage(ctx context.Context, page, limit int, userID string) (*models.TodoListResponse, error) {
	result, err := s.todoRepo.GetAllPaginated(ctx, page, limit, userID)
	if err != nil {
		return nil, err
	}
	return &models.TodoListResponse{
		Data: result.Items,
		Metadata: models.PaginationMetadata{
			Total:      result.Total,
			Page:       result.Page,
			TotalPages: result.TotalPages,
			Limit:      limit,
		},
	}, nil
}

// Create stores a new unfinished todo for the user
func (s *todoService) Create(ctx context.Context, content, userID string, dueDate *string) (*entities.Todo, error) {
	now := s.now()
	todo := &entities.Todo{
		ID:        uuid.NewString(),
		UserID:    userID,
		Content:   content,
		DueDate:   dueDate,
		Status:    entities.StatusUnfinished,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.todoRepo.Create(ctx, todo)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	return created, nil
}

// Update validates and applies a partial update to one of the user's todos
func (s *todoService) Update(ctx context.Context, id string, updates entities.TodoUpdate, userID string) (*entities.Todo, error) {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return nil, err
	}

	if updates.Status != nil && !updates.Status.IsValid() {
		return nil, &apperror.ValidationError{Code: apperror.CodeInvalidStatus, Message: "Invalid status value"}
	}
	if updates.DueDate != nil && !dates.Valid(*updates.DueDate) {
		return nil, &apperror.ValidationError{Code: apperror.CodeInvalidDate, Message: "Invalid due date format"}
	}

	updated, err := s.todoRepo.Update(ctx, id, userID, updates)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.TodoNotFound(id)
	}
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	return updated, nil
}

// Delete removes one of the user's todos and returns it
func (s *todoService) Delete(ctx context.Context, id, userID string) (*entities.Todo, error) {
	deleted, err := s.todoRepo.Delete(ctx, id, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.TodoNotFound(id)
	}
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	return deleted, nil
}

// GetByID returns the todo if it exists and belongs to the user
func (s *todoService) GetByID(ctx context.Context, id, userID string) (*entities.Todo, error) {
	todo, err := s.todoRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.TodoNotFound(id)
	}
	if err != nil {
		return nil, err
	}
	if todo.UserID != userID {
		return nil, apperror.TodoNotFound(id)
	}
	return todo, nil
}

// invalidate bumps the user's cache version, which orphans every page cached
// so far, including one a concurrent fill is about to write. The previous
// version's pages are then deleted; anything missed expires with its TTL.
// Failures are logged only.
func (s *todoService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	version, err := s.cache.Incr(ctx, cache.TodoVersionKey(userID))
	if err != nil {
		s.logger.WarnContext(ctx, "todo page cache invalidation failed", "user_id", userID, "error", err)
		return
	}
	if err := s.cache.DeletePrefix(ctx, cache.TodoPagePrefix(userID, version-1)); err != nil {
		s.logger.WarnContext(ctx, "todo page cache cleanup failed", "user_id", userID, "error", err)
	}
}
