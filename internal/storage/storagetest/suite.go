// Package storagetest holds a behavioral test suite shared by every
// storage.Store implementation.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/youridegraef/qash-backend-sub000/internal/models"
	"github.com/youridegraef/qash-backend-sub000/internal/storage"
)

// Suite exercises a storage.Store. NewStore must return an empty store.
type Suite struct {
	suite.Suite

	NewStore func(t *testing.T) storage.Store

	store storage.Store
	ctx   context.Context
}

func (s *Suite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.NewStore(s.T())
}

func (s *Suite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *Suite) createUser(email string) *models.User {
	u := &models.User{Name: "Test", Email: email, PasswordHash: "hash"}
	s.Require().NoError(s.store.CreateUser(s.ctx, u))
	return u
}

func (s *Suite) createCategory(userID int, name string) *models.Category {
	c := &models.Category{Name: name, Color: "#fff", UserID: userID}
	s.Require().NoError(s.store.CreateCategory(s.ctx, c))
	return c
}

func (s *Suite) createTransaction(userID, categoryID int, amount float64, date time.Time) *models.Transaction {
	tx := &models.Transaction{Description: "tx", Amount: amount, Date: date, UserID: userID, CategoryID: categoryID}
	s.Require().NoError(s.store.CreateTransaction(s.ctx, tx))
	return tx
}

func (s *Suite) TestUserLifecycle() {
	dob := day(1990, time.May, 17)
	u := &models.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "hash", DateOfBirth: &dob}
	s.Require().NoError(s.store.CreateUser(s.ctx, u))
	s.Positive(u.ID)

	got, err := s.store.GetUserByID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal("Alice", got.Name)
	s.Require().NotNil(got.DateOfBirth)
	s.True(dob.Equal(*got.DateOfBirth))

	byEmail, err := s.store.GetUserByEmail(s.ctx, "ALICE@example.com")
	s.Require().NoError(err)
	s.Equal(u.ID, byEmail.ID)

	got.Name = "Alice B"
	got.DateOfBirth = nil
	s.Require().NoError(s.store.UpdateUser(s.ctx, got))
	got, err = s.store.GetUserByID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal("Alice B", got.Name)
	s.Nil(got.DateOfBirth)

	s.Require().NoError(s.store.DeleteUser(s.ctx, u.ID))
	_, err = s.store.GetUserByID(s.ctx, u.ID)
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *Suite) TestUserEmailIsUnique() {
	s.createUser("bob@example.com")
	err := s.store.CreateUser(s.ctx, &models.User{Name: "Bob", Email: "Bob@Example.com", PasswordHash: "x"})
	s.ErrorIs(err, storage.ErrConflict)
}

func (s *Suite) TestMissingRecords() {
	_, err := s.store.GetUserByEmail(s.ctx, "nobody@example.com")
	s.ErrorIs(err, storage.ErrNotFound)
	_, err = s.store.GetCategoryByID(s.ctx, 999)
	s.ErrorIs(err, storage.ErrNotFound)
	_, err = s.store.GetTransactionByID(s.ctx, 999)
	s.ErrorIs(err, storage.ErrNotFound)
	_, err = s.store.GetTagByID(s.ctx, 999)
	s.ErrorIs(err, storage.ErrNotFound)
	_, err = s.store.GetBudgetByID(s.ctx, 999)
	s.ErrorIs(err, storage.ErrNotFound)
	_, err = s.store.GetSavingGoalByID(s.ctx, 999)
	s.ErrorIs(err, storage.ErrNotFound)

	s.ErrorIs(s.store.UpdateTransaction(s.ctx, &models.Transaction{ID: 999}), storage.ErrNotFound)
	s.ErrorIs(s.store.DeleteTransaction(s.ctx, 999), storage.ErrNotFound)
	s.ErrorIs(s.store.DeleteBudget(s.ctx, 999), storage.ErrNotFound)
	s.ErrorIs(s.store.DeleteTag(s.ctx, 999), storage.ErrNotFound)
	s.ErrorIs(s.store.DeleteSavingGoal(s.ctx, 999), storage.ErrNotFound)
	s.ErrorIs(s.store.DeleteCategory(s.ctx, 999), storage.ErrNotFound)
}

func (s *Suite) TestCategories() {
	u := s.createUser("carol@example.com")
	other := s.createUser("dave@example.com")
	food := s.createCategory(u.ID, "Food")
	s.createCategory(u.ID, "Rent")
	s.createCategory(other.ID, "Travel")

	all, err := s.store.ListCategoriesByUser(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Len(all, 2)
	s.Equal("Food", all[0].Name)

	page, err := s.store.ListCategoriesByUserPaged(s.ctx, u.ID, 2, 1)
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal("Rent", page[0].Name)

	food.Name = "Groceries"
	s.Require().NoError(s.store.UpdateCategory(s.ctx, food))
	got, err := s.store.GetCategoryByID(s.ctx, food.ID)
	s.Require().NoError(err)
	s.Equal("Groceries", got.Name)

	none, err := s.store.ListCategoriesByUser(s.ctx, 12345)
	s.Require().NoError(err)
	s.NotNil(none)
	s.Empty(none)
}

func (s *Suite) TestInvalidPaging() {
	u := s.createUser("erin@example.com")
	_, err := s.store.ListTransactionsByUserPaged(s.ctx, u.ID, 0, 10)
	s.ErrorIs(err, storage.ErrInvalidArgument)
	_, err = s.store.ListSavingGoalsByUserPaged(s.ctx, u.ID, 1, 0)
	s.ErrorIs(err, storage.ErrInvalidArgument)
}

func (s *Suite) TestTransactionsOrderingAndPaging() {
	u := s.createUser("frank@example.com")
	c := s.createCategory(u.ID, "Misc")
	oldest := s.createTransaction(u.ID, c.ID, -10, day(2024, time.January, 1))
	newest := s.createTransaction(u.ID, c.ID, 100, day(2024, time.March, 1))
	middle := s.createTransaction(u.ID, c.ID, -5.5, day(2024, time.February, 1))

	all, err := s.store.ListTransactionsByUser(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal([]int{newest.ID, middle.ID, oldest.ID}, []int{all[0].ID, all[1].ID, all[2].ID})
	s.InDelta(-5.5, all[1].Amount, 1e-9)
	s.True(day(2024, time.February, 1).Equal(all[1].Date))

	page, err := s.store.ListTransactionsByUserPaged(s.ctx, u.ID, 2, 2)
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal(oldest.ID, page[0].ID)

	byCategory, err := s.store.ListTransactionsByCategory(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Len(byCategory, 3)
}

func (s *Suite) TestTransactionUpdateAndDelete() {
	u := s.createUser("gina@example.com")
	c := s.createCategory(u.ID, "Misc")
	tx := s.createTransaction(u.ID, c.ID, -10, day(2024, time.January, 1))

	tx.Amount = -20
	tx.Description = "updated"
	s.Require().NoError(s.store.UpdateTransaction(s.ctx, tx))
	got, err := s.store.GetTransactionByID(s.ctx, tx.ID)
	s.Require().NoError(err)
	s.Equal("updated", got.Description)
	s.InDelta(-20, got.Amount, 1e-9)

	s.Require().NoError(s.store.DeleteTransaction(s.ctx, tx.ID))
	_, err = s.store.GetTransactionByID(s.ctx, tx.ID)
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *Suite) TestTransactionRequiresCategory() {
	u := s.createUser("hank@example.com")
	err := s.store.CreateTransaction(s.ctx, &models.Transaction{
		Description: "orphan", Amount: 1, Date: day(2024, time.January, 1), UserID: u.ID, CategoryID: 4242,
	})
	s.ErrorIs(err, storage.ErrInvalidArgument)
}

func (s *Suite) TestTagAssociation() {
	u := s.createUser("ivy@example.com")
	c := s.createCategory(u.ID, "Misc")
	tx := s.createTransaction(u.ID, c.ID, -10, day(2024, time.January, 1))

	work := &models.Tag{Name: "work", Color: "#000", UserID: u.ID}
	trip := &models.Tag{Name: "trip", Color: "#111", UserID: u.ID}
	s.Require().NoError(s.store.CreateTag(s.ctx, work))
	s.Require().NoError(s.store.CreateTag(s.ctx, trip))

	untagged, err := s.store.ListTagsByTransaction(s.ctx, tx.ID)
	s.Require().NoError(err)
	s.Empty(untagged)

	s.Require().NoError(s.store.AddTagsToTransaction(s.ctx, tx.ID, []int{work.ID, trip.ID}))
	s.Require().NoError(s.store.AddTagsToTransaction(s.ctx, tx.ID, []int{work.ID}))

	tags, err := s.store.ListTagsByTransaction(s.ctx, tx.ID)
	s.Require().NoError(err)
	s.Len(tags, 2)

	s.Require().NoError(s.store.DeleteTag(s.ctx, trip.ID))
	tags, err = s.store.ListTagsByTransaction(s.ctx, tx.ID)
	s.Require().NoError(err)
	s.Require().Len(tags, 1)
	s.Equal("work", tags[0].Name)

	s.Require().NoError(s.store.RemoveTagsFromTransaction(s.ctx, tx.ID))
	tags, err = s.store.ListTagsByTransaction(s.ctx, tx.ID)
	s.Require().NoError(err)
	s.Empty(tags)

	userTags, err := s.store.ListTagsByUser(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Len(userTags, 1)
}

func (s *Suite) TestBudgets() {
	u := s.createUser("jack@example.com")
	other := s.createUser("kate@example.com")
	food := s.createCategory(u.ID, "Food")
	travel := s.createCategory(other.ID, "Travel")

	first := &models.Budget{StartDate: day(2024, time.January, 1), EndDate: day(2024, time.January, 31), Target: 300, CategoryID: food.ID}
	second := &models.Budget{StartDate: day(2024, time.February, 1), EndDate: day(2024, time.February, 29), Target: 250, CategoryID: food.ID}
	foreign := &models.Budget{StartDate: day(2024, time.January, 1), EndDate: day(2024, time.December, 31), Target: 1000, CategoryID: travel.ID}
	for _, b := range []*models.Budget{first, second, foreign} {
		s.Require().NoError(s.store.CreateBudget(s.ctx, b))
	}

	mine, err := s.store.ListBudgetsByUser(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Len(mine, 2)

	byCategory, err := s.store.GetBudgetByCategory(s.ctx, food.ID)
	s.Require().NoError(err)
	s.Equal(first.ID, byCategory.ID)
	s.True(first.EndDate.Equal(byCategory.EndDate))

	second.Target = 200
	s.Require().NoError(s.store.UpdateBudget(s.ctx, second))
	got, err := s.store.GetBudgetByID(s.ctx, second.ID)
	s.Require().NoError(err)
	s.InDelta(200, got.Target, 1e-9)

	page, err := s.store.ListBudgetsByUserPaged(s.ctx, u.ID, 1, 1)
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal(first.ID, page[0].ID)
}

func (s *Suite) TestDeleteCategoryCascades() {
	u := s.createUser("liam@example.com")
	c := s.createCategory(u.ID, "Food")
	tx := s.createTransaction(u.ID, c.ID, -10, day(2024, time.January, 1))
	b := &models.Budget{StartDate: day(2024, time.January, 1), EndDate: day(2024, time.January, 31), Target: 50, CategoryID: c.ID}
	s.Require().NoError(s.store.CreateBudget(s.ctx, b))

	s.Require().NoError(s.store.DeleteCategory(s.ctx, c.ID))

	_, err := s.store.GetTransactionByID(s.ctx, tx.ID)
	s.ErrorIs(err, storage.ErrNotFound)
	_, err = s.store.GetBudgetByID(s.ctx, b.ID)
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *Suite) TestSavingGoals() {
	u := s.createUser("mia@example.com")
	g := &models.SavingGoal{Name: "Bike", Target: 800, Deadline: day(2025, time.June, 1), UserID: u.ID}
	s.Require().NoError(s.store.CreateSavingGoal(s.ctx, g))
	s.Require().NoError(s.store.CreateSavingGoal(s.ctx, &models.SavingGoal{Name: "Trip", Target: 1500, Deadline: day(2025, time.August, 1), UserID: u.ID}))

	goals, err := s.store.ListSavingGoalsByUser(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Len(goals, 2)

	g.Target = 900
	s.Require().NoError(s.store.UpdateSavingGoal(s.ctx, g))
	got, err := s.store.GetSavingGoalByID(s.ctx, g.ID)
	s.Require().NoError(err)
	s.InDelta(900, got.Target, 1e-9)
	s.True(day(2025, time.June, 1).Equal(got.Deadline))

	s.Require().NoError(s.store.DeleteUser(s.ctx, u.ID))
	goals, err = s.store.ListSavingGoalsByUser(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Empty(goals)
}
