package service

import (
	"time"

	"github.com/youridegraef/qash-backend-sub000/internal/models"
)

// CategoryDTO is the public shape of a category.
type CategoryDTO struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	UserID int    `json:"userId"`
}

// TagDTO is the public shape of a tag.
type TagDTO struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	UserID int    `json:"userId"`
}

// TransactionDTO is a transaction enriched with its category and tags.
type TransactionDTO struct {
	ID          int          `json:"id"`
	Description string       `json:"description"`
	Amount      float64      `json:"amount"`
	Date        time.Time    `json:"date"`
	UserID      int          `json:"userId"`
	CategoryID  int          `json:"categoryId"`
	Category    *CategoryDTO `json:"category"`
	Tags        []TagDTO     `json:"tags"`
}

// BudgetDTO is a budget with its derived spent amount.
type BudgetDTO struct {
	ID           int       `json:"id"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Target       float64   `json:"target"`
	Spent        float64   `json:"spent"`
	CategoryID   int       `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	UserID       int       `json:"userId"`
}

// SavingGoalDTO is a saving goal with the user's balance as progress.
type SavingGoalDTO struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Target      float64   `json:"target"`
	AmountSaved float64   `json:"amountSaved"`
	Deadline    time.Time `json:"deadline"`
	UserID      int       `json:"userId"`
}

// UserDTO holds the public user fields. The password hash is never part of it.
type UserDTO struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
}

// AuthResult is returned by a successful Authenticate.
type AuthResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      UserDTO   `json:"user"`
}

// SummaryDTO holds a user's ledger totals.
type SummaryDTO struct {
	Balance  float64 `json:"balance"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

func newCategoryDTO(c models.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID, Name: c.Name, Color: c.Color, UserID: c.UserID}
}

func newTagDTO(t models.Tag) TagDTO {
	return TagDTO{ID: t.ID, Name: t.Name, Color: t.Color, UserID: t.UserID}
}

// NewUserDTO projects a user onto its public fields.
func NewUserDTO(u *models.User) UserDTO {
	return UserDTO{ID: u.ID, Name: u.Name, Email: u.Email, DateOfBirth: u.DateOfBirth}
}
