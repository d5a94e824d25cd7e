package models

import "time"

// Transaction is a single ledger entry.
//
// The sign of Amount is the only thing that distinguishes income from an
// expense: positive amounts are income, negative amounts are expenses.
type Transaction struct {
	// ID is assigned by storage on creation.
	ID int

	// Description is a short free-text label (e.g. "Rent", "Salary").
	Description string

	// Amount is signed. See the type doc.
	Amount float64

	// Date is the day the transaction happened. Only the calendar date is
	// persisted.
	Date time.Time

	UserID     int
	CategoryID int
}

// IsIncome reports whether the transaction adds to the balance.
func (t Transaction) IsIncome() bool {
	return t.Amount > 0
}

// IsExpense reports whether the transaction subtracts from the balance.
func (t Transaction) IsExpense() bool {
	return t.Amount < 0
}
