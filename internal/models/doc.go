// Package models defines the core domain models for Qash.
//
// # Entities
//
//   - User: a registered account; owns everything else
//   - Category: a user-defined bucket for transactions (e.g. "Groceries")
//   - Transaction: a signed amount on a date; negative is an expense, positive is income
//   - Tag: a free-form label attached to transactions through a join table
//   - Budget: a spending target for one category over a date window
//   - SavingGoal: a savings target with a deadline
//
// # Ownership
//
// Every Category, Transaction, Tag and SavingGoal carries a UserID. A Budget
// belongs to a user through its category. Relationships are expressed with
// integer IDs, never pointers.
//
// # Derived values
//
// A budget's spent amount and a saving goal's saved amount are not stored.
// They are computed from transactions at read time by the service layer.
package models
