package domain

import "time"

type Email = string

type Account struct {
	Id           string    `json:"id"`
	Email        Email     `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Credentials struct {
	Email    Email
	Password string
}

// PendingRegistration is an in-flight signup: the code was sent but not
// confirmed yet. Owned exclusively by the pending store.
type PendingRegistration struct {
	Email        Email
	Code         string
	PasswordHash string
	ExpiresAt    time.Time
}
