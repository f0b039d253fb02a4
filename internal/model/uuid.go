package model

import "github.com/google/uuid"

// GenerateID creates a new random identifier.
func GenerateID() string {
	return uuid.New().String()
}

// GenerateSecret creates a short random token, e.g. for temporary passwords.
func GenerateSecret() string {
	id := uuid.New()
	return id.String()[:8]
}
