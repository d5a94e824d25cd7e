package models

// Category groups transactions for a single user.
type Category struct {
	ID     int
	Name   string
	UserID int

	// Color is a display color, typically a hex string such as "#4caf50".
	Color string
}
