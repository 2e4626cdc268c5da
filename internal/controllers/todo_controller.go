package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"todo-be/internal/apperror"
	"todo-be/internal/entities"
	"todo-be/internal/middleware"
	"todo-be/internal/models"
	"todo-be/internal/sanitize"
	"todo-be/internal/service"
)

// Pagination defaults for GET /api/todos
const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type TodoController struct {
	todoService service.TodoService
}

func NewTodoController(todoService service.TodoService) *TodoController {
	return &TodoController{
		todoService: todoService,
	}
}

// Create handles POST /api/todos
func (tc *TodoController) Create(c *gin.Context) {
	var req models.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	content := sanitize.StripTrimmed(req.Content)
	if content == "" {
		_ = c.Error(apperror.Validation("Validation failed",
			apperror.FieldError{Field: "content", Message: "Content is required"}))
		return
	}
	dueDate := sanitize.StripTrimmed(req.DueDate)

	todo, err := tc.todoService.Create(c.Request.Context(), content, middleware.UserID(c), &dueDate)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, models.TodoResponse{
		Message: "To-Do created successfully",
		Data:    sanitize.Todo(*todo),
	})
}

// List handles GET /api/todos?page=&limit=
func (tc *TodoController) List(c *gin.Context) {
	var query models.ListTodosQuery
	_ = c.ShouldBindQuery(&query)

	page := parsePositive(query.Page, defaultPage)
	if page < 1 {
		page = 1
	}
	limit := parsePositive(query.Limit, defaultLimit)
	limit = max(1, min(limit, maxLimit))

	resp, err := tc.todoService.ListPaginated(c.Request.Context(), page, limit, middleware.UserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.TodoListResponse{
		Data:     sanitize.Todos(resp.Data),
		Metadata: resp.Metadata,
	})
}

// Get handles GET /api/todos/:id
func (tc *TodoController) Get(c *gin.Context) {
	id, ok := bindTodoID(c)
	if !ok {
		return
	}

	todo, err := tc.todoService.GetByID(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.TodoResponse{Data: sanitize.Todo(*todo)})
}

// Update handles PATCH /api/todos/:id
func (tc *TodoController) Update(c *gin.Context) {
	id, ok := bindTodoID(c)
	if !ok {
		return
	}

	var req models.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		_ = c.Error(bindError(err))
		return
	}

	var updates entities.TodoUpdate
	if req.Content != nil {
		content := sanitize.StripTrimmed(*req.Content)
		if content == "" {
			_ = c.Error(apperror.Validation("Validation failed",
				apperror.FieldError{Field: "content", Message: "Content cannot be empty"}))
			return
		}
		updates.Content = &content
	}
	if req.Status != nil {
		status := entities.TodoStatus(*req.Status)
		updates.Status = &status
	}
	if req.DueDate != nil {
		due := strings.TrimSpace(*req.DueDate)
		updates.DueDate = &due
	}

	todo, err := tc.todoService.Update(c.Request.Context(), id, updates, middleware.UserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.TodoResponse{
		Message: "Todo updated successfully",
		Data:    sanitize.Todo(*todo),
	})
}

// Delete handles DELETE /api/todos/:id
func (tc *TodoController) Delete(c *gin.Context) {
	id, ok := bindTodoID(c)
	if !ok {
		return
	}

	if _, err := tc.todoService.Delete(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "To-Do deleted successfully"})
}

func bindTodoID(c *gin.Context) (string, bool) {
	var uri models.TodoURI
	if err := c.ShouldBindUri(&uri); err != nil {
		_ = c.Error(bindError(err))
		return "", false
	}
	return uri.ID, true
}

// parsePositive parses s, returning def when s is empty, malformed or zero
func parsePositive(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n == 0 {
		return def
	}
	return n
}
