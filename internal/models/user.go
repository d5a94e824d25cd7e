package models

import "time"

// User represents a registered user account.
type User struct {
	// ID is assigned by storage on creation and is > 0 once persisted.
	ID int

	// Name is the display name of the user.
	Name string

	// Email is the user's email address (unique). Used for login.
	Email string

	// PasswordHash is the bcrypt hash of the user's password.
	// It never leaves the service layer.
	PasswordHash string

	// DateOfBirth is optional.
	DateOfBirth *time.Time
}
