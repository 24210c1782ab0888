package models

import "time"

// Session represents one authenticated login. The ID is derived one-way
// from the bearer token; the plaintext token is never stored.
type Session struct {
	ID        string    `json:"-" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
