package user

import "time"

// User represents a registered account. The password hash never leaves this
// package except as an opaque value handed to the repository.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}
