package model

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// EmailRequest is the body of the email-only auth endpoints.
type EmailRequest struct {
	Email string `json:"email"`
}
