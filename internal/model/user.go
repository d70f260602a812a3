package model

import "time"

// User represents a registered account.
//
// Username and Email are each globally unique — the repository enforces
// this with UNIQUE constraints and surfaces violations as a conflict error,
// so two signups with the same name or address cannot both succeed.
//
// PasswordHash is a bcrypt hash of the signup password; the plaintext is
// never stored. The hash is excluded from JSON serialization.
//
// Role defaults to "user". An "admin" value exists in the model but no code
// path grants it and nothing checks it yet — it is carried through the
// session claims for forward compatibility only.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DefaultRole is assigned to every account at signup.
const DefaultRole = "user"
