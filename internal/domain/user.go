package domain

import "time"

// User is the domain entity for an account.
type User struct {
	ID           string
	Email        string
	Name         string // optional display name
	PasswordHash string
	CreatedAt    time.Time
}
