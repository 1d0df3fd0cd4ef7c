package domain

import "time"

type User struct {
	ID           int64
	Email        string
	PasswordHash string // argon2 encoded
	CreatedAt    time.Time
}
