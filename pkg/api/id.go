package api

import "github.com/google/uuid"

// NewID returns a random slide identifier. IDs are never reused.
func NewID() string {
	return uuid.NewString()
}
