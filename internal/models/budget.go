package models

import "time"

// Budget is a spending target for one category over an inclusive date
// window.
//
// How much of the budget has been spent is derived from the category's
// transactions between StartDate and EndDate; it is never stored.
type Budget struct {
	ID int

	// StartDate and EndDate bound the window, both inclusive.
	// StartDate is never after EndDate.
	StartDate time.Time
	EndDate   time.Time

	// Target is the amount the user plans to spend at most. Never negative.
	Target float64

	// CategoryID links the budget to its category, and through it to a user.
	CategoryID int
}
