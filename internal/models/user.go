package models

// UserDB represents a user record in the database
type UserDB struct {
	ID           int64  `json:"id" db:"id"`         // Primary key
	Name         string `json:"name" db:"name"`     // Unique display name
	Email        string `json:"email" db:"email"`   // Unique email
	PasswordHash string `json:"-" db:"password"`    // Hashed password, never serialized
	Status       bool   `json:"status" db:"status"` // Active flag; only active users are listed
}
