package models

// Tag is a user-defined label. Tags are attached to transactions through a
// separate association, so a tag can exist without any transactions.
type Tag struct {
	ID     int
	Name   string
	Color  string
	UserID int
}
