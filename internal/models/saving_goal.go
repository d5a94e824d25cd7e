package models

import "time"

// SavingGoal is an amount a user wants to have saved by a deadline.
//
// Progress is reported as the user's overall balance; there is no per-goal
// contribution ledger.
type SavingGoal struct {
	ID     int
	Name   string
	Target float64

	// Deadline is the date by which the target should be reached.
	Deadline time.Time

	UserID int
}
