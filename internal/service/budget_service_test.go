package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetSpent(t *testing.T) {
	f := newFixture(t)
	other, err := f.svc.Categories.Add(f.ctx, "Fun", "", f.user.ID)
	require.NoError(t, err)

	f.addTx(t, -40, day(2024, 1, 5))
	f.addTx(t, -10, day(2024, 1, 31))
	f.addTx(t, -99, day(2024, 2, 1))
	_, err = f.svc.Transactions.Add(f.ctx, "cinema", -12, day(2024, 1, 10), f.user.ID, other.ID, nil)
	require.NoError(t, err)

	budget, err := f.svc.Budgets.Add(f.ctx, day(2024, 1, 1), day(2024, 1, 31), 300, f.category.ID)
	require.NoError(t, err)

	assert.Equal(t, 50.0, budget.Spent)
	assert.Equal(t, 300.0, budget.Target)
	assert.Equal(t, "Groceries", budget.CategoryName)
	assert.Equal(t, f.user.ID, budget.UserID)

	sum, err := f.svc.Categories.CalculateSpendingsByCategoryAndDateRange(f.ctx, f.category.ID, budget.StartDate, budget.EndDate)
	require.NoError(t, err)
	assert.Equal(t, -sum, budget.Spent)

	byCategory, err := f.svc.Budgets.GetByCategoryID(f.ctx, f.category.ID)
	require.NoError(t, err)
	assert.Equal(t, budget, byCategory)

	_, err = f.svc.Budgets.GetByCategoryID(f.ctx, other.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBudgetSpentWithoutTransactions(t *testing.T) {
	f := newFixture(t)
	budget, err := f.svc.Budgets.Add(f.ctx, day(2024, 1, 1), day(2024, 1, 1), 0, f.category.ID)
	require.NoError(t, err)
	assert.Zero(t, budget.Spent)
	assert.False(t, math.Signbit(budget.Spent))
}

func TestBudgetAddValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Budgets.Add(f.ctx, day(2024, 2, 1), day(2024, 1, 1), 10, f.category.ID)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.svc.Budgets.Add(f.ctx, day(2024, 1, 1), day(2024, 2, 1), -1, f.category.ID)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.svc.Budgets.Add(f.ctx, day(2024, 1, 1), day(2024, 2, 1), 10, 0)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.svc.Budgets.Add(f.ctx, day(2024, 1, 1), day(2024, 2, 1), 10, 9999)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBudgetListsAndMutations(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Budgets.GetByUserID(f.ctx, f.user.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	budget, err := f.svc.Budgets.Add(f.ctx, day(2024, 1, 1), day(2024, 1, 31), 100, f.category.ID)
	require.NoError(t, err)

	list, err := f.svc.Budgets.GetByUserID(f.ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, []BudgetDTO{*budget}, list)

	page, err := f.svc.Budgets.GetByUserIDPaged(f.ctx, f.user.ID, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, list, page)

	require.True(t, f.svc.Budgets.Edit(f.ctx, budget.ID, day(2024, 1, 1), day(2024, 3, 31), 250, f.category.ID))
	got, err := f.svc.Budgets.GetByID(f.ctx, budget.ID)
	require.NoError(t, err)
	assert.Equal(t, 250.0, got.Target)
	assert.Equal(t, day(2024, 3, 31), got.EndDate)

	assert.False(t, f.svc.Budgets.Edit(f.ctx, 9999, day(2024, 1, 1), day(2024, 1, 2), 1, f.category.ID))
	assert.False(t, f.svc.Budgets.Edit(f.ctx, budget.ID, day(2024, 1, 2), day(2024, 1, 1), 1, f.category.ID))

	assert.True(t, f.svc.Budgets.Delete(f.ctx, budget.ID))
	assert.False(t, f.svc.Budgets.Delete(f.ctx, budget.ID))
	_, err = f.svc.Budgets.GetByID(f.ctx, budget.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
