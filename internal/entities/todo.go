package entities

import "time"

// TodoStatus is the completion state of a todo
type TodoStatus string

const (
	StatusUnfinished TodoStatus = "Unfinished"
	StatusDone       TodoStatus = "Done"
)

// IsValid reports whether s is one of the known statuses
func (s TodoStatus) IsValid() bool {
	return s == StatusUnfinished || s == StatusDone
}

// Todo represents a todo item owned by a single user
type Todo struct {
	ID        string     `json:"id"` // UUID
	UserID    string     `json:"userId"`
	Content   string     `json:"content"`
	DueDate   *string    `json:"dueDate,omitempty"` // ISO-8601 date or datetime, as submitted
	Status    TodoStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// TodoUpdate is a partial update. Nil fields are left untouched.
type TodoUpdate struct {
	Content *string
	Status  *TodoStatus
	DueDate *string
}

// Apply merges the non-nil fields of u into t
func (u TodoUpdate) Apply(t *Todo) {
	if u.Content != nil {
		t.Content = *u.Content
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.DueDate != nil {
		due := *u.DueDate
		t.DueDate = &due
	}
}

// TodoPage is one page of a user's todos, newest first
type TodoPage struct {
	Items      []Todo
	Total      int
	Page       int
	TotalPages int
}
