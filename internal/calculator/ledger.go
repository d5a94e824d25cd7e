// Package calculator aggregates transaction amounts.
//
// Everything here is a pure function over a slice of transactions. Amounts
// are accumulated as decimals and converted back to float64 once, so long
// ledgers don't drift.
package calculator

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/youridegraef/qash-backend-sub000/internal/models"
)

// Totals summarizes a set of transactions.
type Totals struct {
	// Balance is the signed sum of every amount.
	Balance float64

	// Income is the sum of the positive amounts.
	Income float64

	// Expenses is the magnitude of the sum of the negative amounts. Never negative.
	Expenses float64
}

func sum(txs []models.Transaction, keep func(models.Transaction) bool) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if keep(tx) {
			total = total.Add(decimal.NewFromFloat(tx.Amount))
		}
	}
	return total
}

func all(models.Transaction) bool { return true }

// Sum returns the signed total of the transactions.
func Sum(txs []models.Transaction) float64 {
	return sum(txs, all).InexactFloat64()
}

// Balance is the signed total of a user's transactions. Income and expenses
// cancel out naturally.
func Balance(txs []models.Transaction) float64 {
	return Sum(txs)
}

// Income sums the positive amounts.
func Income(txs []models.Transaction) float64 {
	return sum(txs, models.Transaction.IsIncome).InexactFloat64()
}

// Expenses sums the negative amounts and returns the magnitude.
func Expenses(txs []models.Transaction) float64 {
	return sum(txs, models.Transaction.IsExpense).Abs().InexactFloat64()
}

// Summarize computes Balance, Income and Expenses in one pass.
func Summarize(txs []models.Transaction) Totals {
	income, expenses := decimal.Zero, decimal.Zero
	for _, tx := range txs {
		amount := decimal.NewFromFloat(tx.Amount)
		switch {
		case amount.IsPositive():
			income = income.Add(amount)
		case amount.IsNegative():
			expenses = expenses.Add(amount)
		}
	}
	return Totals{
		Balance:  income.Add(expenses).InexactFloat64(),
		Income:   income.InexactFloat64(),
		Expenses: expenses.Abs().InexactFloat64(),
	}
}

// Between returns the transactions dated within [start, end], both ends
// inclusive, comparing calendar days only.
func Between(txs []models.Transaction, start, end time.Time) []models.Transaction {
	from, to := models.Day(start), models.Day(end)
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		d := models.Day(tx.Date)
		if d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// Spent reports how much of a budget was used: the signed total negated, so
// expense-dominated sets come out positive.
func Spent(txs []models.Transaction) float64 {
	return sum(txs, all).Neg().InexactFloat64()
}
