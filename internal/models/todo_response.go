package models

import (
	"todo-be/internal/apperror"
	"todo-be/internal/entities"
)

// PaginationMetadata describes the page returned by a list request
type PaginationMetadata struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	Limit      int `json:"limit"`
}

// TodoListResponse is one page of todos with its metadata
type TodoListResponse struct {
	Data     []entities.Todo    `json:"data"`
	Metadata PaginationMetadata `json:"metadata"`
}

// TodoResponse wraps a single todo, with a message on mutations
type TodoResponse struct {
	Message string        `json:"message,omitempty"`
	Data    entities.Todo `json:"data"`
}

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Code    string                `json:"code,omitempty"`
	Errors  []apperror.FieldError `json:"errors,omitempty"`
}
