package models

// CreateTodoRequest represents the request body for creating a todo
type CreateTodoRequest struct {
	Content string `json:"content" binding:"required"`
	DueDate string `json:"dueDate" binding:"required,iso8601"`
}

// UpdateTodoRequest represents the request body for a partial todo update.
// Omitted fields are left unchanged.
type UpdateTodoRequest struct {
	Content *string `json:"content" binding:"omitempty"`
	DueDate *string `json:"dueDate" binding:"omitempty,iso8601,notpast"`
	Status  *string `json:"status" binding:"omitempty,oneof=Unfinished Done"`
}

// TodoURI binds the :id path parameter
type TodoURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// ListTodosQuery binds the pagination query string
type ListTodosQuery struct {
	Page  string `form:"page"`
	Limit string `form:"limit"`
}
