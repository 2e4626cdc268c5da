package entities

import "time"

// User represents a registered account in the auth store
type User struct {
	ID        string    `json:"id"` // UUID
	Email     string    `json:"email"`
	Password  string    `json:"password"` // bcrypt hash, never the plain password
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
