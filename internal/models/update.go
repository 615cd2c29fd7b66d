package models

// UserUpdate carries the fields of a user save. A zero ID inserts a new
// row; a non-zero ID updates only the non-nil fields, leaving the rest
// unchanged.
type UserUpdate struct {
	ID           int64
	Name         *string
	Email        *string
	PasswordHash *string
	Status       *bool
}
