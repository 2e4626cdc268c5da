package models

// MessageResponse is the body of responses that only carry a message
type MessageResponse struct {
	Message string `json:"message"`
}

// SigninResponse represents the response after successful authentication
type SigninResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"` // JWT token
}
