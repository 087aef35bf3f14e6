package domain

import "time"

// User is an account that can log in and receive access tokens.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity returns the token identity for the account.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Name: u.Name}
}
