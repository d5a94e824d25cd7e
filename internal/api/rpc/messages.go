package rpc

import "github.com/youridegraef/qash-backend-sub000/internal/service"

// Dates are YYYY-MM-DD strings on the wire.

type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
}

type RegisterResponse struct {
	User service.UserDTO `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GetSummaryRequest struct{}

// ListTransactionsRequest lists every transaction when both fields are
// zero and one page otherwise.
type ListTransactionsRequest struct {
	Page     int `json:"page,omitempty"`
	PageSize int `json:"pageSize,omitempty"`
}

type ListTransactionsResponse struct {
	Transactions []service.TransactionDTO `json:"transactions"`
}

type TransactionFields struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	CategoryID  int     `json:"categoryId"`
	TagIDs      []int   `json:"tagIds,omitempty"`
}

type AddTransactionRequest struct {
	TransactionFields
}

type EditTransactionRequest struct {
	ID int `json:"id"`
	TransactionFields
}

type TransactionResponse struct {
	Transaction service.TransactionDTO `json:"transaction"`
}

type DeleteTransactionRequest struct {
	ID int `json:"id"`
}

type DeleteTransactionResponse struct{}

type ListBudgetsRequest struct{}

type ListBudgetsResponse struct {
	Budgets []service.BudgetDTO `json:"budgets"`
}

type ListSavingGoalsRequest struct{}

type ListSavingGoalsResponse struct {
	SavingGoals []service.SavingGoalDTO `json:"savingGoals"`
}
