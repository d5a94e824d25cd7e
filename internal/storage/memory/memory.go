// Package memory provides an in-process implementation of storage.Store.
// Data lives in maps guarded by a single mutex and is lost on Close.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/youridegraef/qash-backend-sub000/internal/models"
	"github.com/youridegraef/qash-backend-sub000/internal/storage"
)

var _ storage.Store = (*Store)(nil)

type tagLink struct {
	transactionID int
	tagID         int
}

// Store implements storage.Store in memory.
type Store struct {
	mu sync.RWMutex

	nextID       int
	users        map[int]models.User
	categories   map[int]models.Category
	transactions map[int]models.Transaction
	tags         map[int]models.Tag
	budgets      map[int]models.Budget
	goals        map[int]models.SavingGoal
	links        map[tagLink]struct{}
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		users:        make(map[int]models.User),
		categories:   make(map[int]models.Category),
		transactions: make(map[int]models.Transaction),
		tags:         make(map[int]models.Tag),
		budgets:      make(map[int]models.Budget),
		goals:        make(map[int]models.SavingGoal),
		links:        make(map[tagLink]struct{}),
	}
}

// Close drops all data.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.users)
	clear(s.categories)
	clear(s.transactions)
	clear(s.tags)
	clear(s.budgets)
	clear(s.goals)
	clear(s.links)
	return nil
}

func (s *Store) id() int {
	s.nextID++
	return s.nextID
}

func notFound(kind string, id any) error {
	return fmt.Errorf("%s %v: %w", kind, id, storage.ErrNotFound)
}

func sortedByID[T any](m map[int]T, keep func(T) bool) []T {
	ids := make([]int, 0, len(m))
	for id, v := range m {
		if keep(v) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

// Users

func (s *Store) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, notFound("user", id)
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, notFound("user", email)
}

func (s *Store) emailTaken(email string, exceptID int) bool {
	for _, u := range s.users {
		if u.ID != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return fmt.Errorf("%w: nil user", storage.ErrInvalidArgument)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTaken(user.Email, 0) {
		return fmt.Errorf("email %s: %w", user.Email, storage.ErrConflict)
	}
	user.ID = s.id()
	s.users[user.ID] = *user
	return nil
}

func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return fmt.Errorf("%w: nil user", storage.ErrInvalidArgument)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return notFound("user", user.ID)
	}
	if s.emailTaken(user.Email, user.ID) {
		return fmt.Errorf("email %s: %w", user.Email, storage.ErrConflict)
	}
	s.users[user.ID] = *user
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return notFound("user", id)
	}
	for cid, c := range s.categories {
		if c.UserID == id {
			s.deleteCategoryLocked(cid)
		}
	}
	for tid, t := range s.transactions {
		if t.UserID == id {
			s.deleteTransactionLocked(tid)
		}
	}
	for tid, t := range s.tags {
		if t.UserID == id {
			s.deleteTagLocked(tid)
		}
	}
	for gid, g := range s.goals {
		if g.UserID == id {
			delete(s.goals, gid)
		}
	}
	delete(s.users, id)
	return nil
}

// Categories

func (s *Store) GetCategoryByID(ctx context.Context, id int) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, notFound("category", id)
	}
	return &c, nil
}

func (s *Store) ListCategoriesByUser(ctx context.Context, userID int) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.categories, func(c models.Category) bool { return c.UserID == userID }), nil
}

func (s *Store) ListCategoriesByUserPaged(ctx context.Context, userID, page, pageSize int) ([]models.Category, error) {
	all, _ := s.ListCategoriesByUser(ctx, userID)
	return storage.Page(all, page, pageSize)
}

func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	if category == nil {
		return fmt.Errorf("%w: nil category", storage.ErrInvalidArgument)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[category.UserID]; !ok {
		return fmt.Errorf("%w: user %d does not exist", storage.ErrInvalidArgument, category.UserID)
	}
	category.ID = s.id()
	s.categories[category.ID] = *category
	return nil
}

func (s *Store) UpdateCategory(ctx context.Context, category *models.Category) error {
	if category == nil {
		return fmt.Errorf("%w: nil category", storage.ErrInvalidArgument)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[category.ID]; !ok {
		return notFound("category", category.ID)
	}
	if _, ok := s.users[category.UserID]; !ok {
		return fmt.Errorf("%w: user %d does not exist", storage.ErrInvalidArgument, category.UserID)
	}
	s.categories[category.ID] = *category
	return nil
}

func (s *Store) DeleteCategory(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return notFound("category", id)
	}
	s.deleteCategoryLocked(id)
	return nil
}

func (s *Store) deleteCategoryLocked(id int) {
	for tid, t := range s.transactions {
		if t.CategoryID == id {
			s.deleteTransactionLocked(tid)
		}
	}
	for bid, b := range s.budgets {
		if b.CategoryID == id {
			delete(s.budgets, bid)
		}
	}
	delete(s.categories, id)
}

// Transactions

func newestFirst(a, b models.Transaction) int {
	if c := b.Date.Compare(a.Date); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}

func (s *Store) listTransactions(keep func(models.Transaction) bool) []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Transaction, 0)
	for _, t := range s.transactions {
		if keep(t) {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, newestFirst)
	return out
}

func (s *Store) GetTransactionByID(ctx context.Context, id int) (*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.transactions[id]
	if !ok {
		return nil, notFound("transaction", id)
	}
	return &t, nil
}

func (s *Store) ListTransactionsByUser(ctx context.Context, userID int) ([]models.Transaction, error) {
	return s.listTransactions(func(t models.Transaction) bool { return t.UserID == userID }), nil
}

func (s *Store) ListTransactionsByUserPaged(ctx context.Context, userID, page, pageSize int) ([]models.Transaction, error) {
	all, _ := s.ListTransactionsByUser(ctx, userID)
	return storage.Page(all, page, pageSize)
}

func (s *Store) ListTransactionsByCategory(ctx context.Context, categoryID int) ([]models.Transaction, error) {
	return s.listTransactions(func(t models.Transaction) bool { return t.CategoryID == categoryID }), nil
}

func (s *Store) checkTransactionRefs(tx *models.Transaction) error {
	if _, ok := s.users[tx.UserID]; !ok {
		return fmt.Errorf("%w: user %d does not exist", storage.ErrInvalidArgument, tx.UserID)
	}
	if _, ok := s.categories[tx.CategoryID]; !ok {
		return fmt.Errorf("%w: category %d does not exist", storage.ErrInvalidArgument, tx.CategoryID)
	}
	return nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	if tx == nil {
		return fmt.Errorf("%w: nil transaction", storage.ErrInvalidArgument)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkTransactionRefs(tx); err != nil {
		return err
	}
	tx.ID = s.id()
	tx.Date = models.Day(tx.Date)
	s.transactions[tx.ID] = *tx
	return nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *models.Transaction) error {
	if tx == nil {
		return fmt.Errorf("%w: nil transaction", storage.ErrInvalidArgument)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.transactions[tx.ID]; !ok {
		return notFound("transaction", tx.ID)
	}
	if err := s.checkTransactionRefs(tx); err != nil {
		return err
	}
	tx.Date = models.Day(tx.Date)
	s.transactions[tx.ID] = *tx
	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.transactions[id]; !ok {
		return notFound("transaction", id)
	}
	s.deleteTransactionLocked(id)
	return nil
}

func (s *Store) deleteTransactionLocked(id int) {
	for l := range s.links {
		if l.transactionID == id {
			delete(s.links, l)
		}
	}
	delete(s.transactions, id)
}

// Tags

func (s *Store) GetTagByID(ctx context.Context, id int) (*models.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tags[id]
	if !ok {
		return nil, notFound("tag", id)
	}
	return &t, nil
}

func (s *Store) ListTagsByUser(ctx context.Context, userID int) ([]models.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.tags, func(t models.Tag) bool { return t.UserID == userID }), nil
}

func (s *Store) ListTagsByUserPaged(ctx context.Context, userID, page, pageSize int) ([]models.Tag, error) {
	all, _ := s.ListTagsByUser(ctx, userID)
	return storage.Page(all, page, pageSize)
}

func (s *Store) ListTagsByTransaction(ctx context.Context, transactionID int) ([]models.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.tags, func(t models.Tag) bool {
		_, ok := s.links[tagLink{transactionID: transactionID, tagID: t.ID}]
		return ok
	}), nil
}

func (s *Store) CreateTag(ctx context.Context, tag *models.Tag) error {
	if tag == nil {
		return fmt.Errorf("%w: nil tag", storage.ErrInvalidArgument)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[tag.UserID]; !ok {
		return fmt.Errorf("%w: user %d does not exist", storage.ErrInvalidArgument, tag.UserID)
	}
	tag.ID = s.id()
	s.tags[tag.ID] = *tag
	return nil
}

func (s *Store) UpdateTag(ctx context.Context, tag *models.Tag) error {
	if tag == nil {
		return fmt.Errorf("%w: nil tag", storage.ErrInvalidArgument)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tags[tag.ID]; !ok {
		return notFound("tag", tag.ID)
	}
	if _, ok := s.users[tag.UserID]; !ok {
		return fmt.Errorf("%w: user %d does not exist", storage.ErrInvalidArgument, tag.UserID)
	}
	s.tags[tag.ID] = *tag
	return nil
}

func (s *Store) DeleteTag(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tags[id]; !ok {
		return notFound("tag", id)
	}
	s.deleteTagLocked(id)
	return nil
}

func (s *Store) deleteTagLocked(id int) {
	for l := range s.links {
		if l.tagID == id {
			delete(s.links, l)
		}
	}
	delete(s.tags, id)
}

func (s *Store) AddTagsToTransaction(ctx context.Context, transactionID int, tagIDs []int) error {
	if len(tagIDs) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.transactions[transactionID]; !ok {
		return fmt.Errorf("%w: transaction %d does not exist", storage.ErrInvalidArgument, transactionID)
	}
	for _, tagID := range tagIDs {
		if _, ok := s.tags[tagID]; !ok {
			return fmt.Errorf("%w: tag %d does not exist", storage.ErrInvalidArgument, tagID)
		}
	}
	for _, tagID := range tagIDs {
		s.links[tagLink{transactionID: transactionID, tagID: tagID}] = struct{}{}
	}
	return nil
}

func (s *Store) RemoveTagsFromTransaction(ctx context.Context, transactionID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for l := range s.links {
		if l.transactionID == transactionID {
			delete(s.links, l)
		}
	}
	return nil
}

// Budgets

func (s *Store) GetBudgetByID(ctx context.Context, id int) (*models.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.budgets[id]
	if !ok {
		return nil, notFound("budget", id)
	}
	return &b, nil
}

func (s *Store) ListBudgetsByUser(ctx context.Context, userID int) ([]models.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.budgets, func(b models.Budget) bool {
		return s.categories[b.CategoryID].UserID == userID
	}), nil
}

func (s *Store) ListBudgetsByUserPaged(ctx context.Context, userID, page, pageSize int) ([]models.Budget, error) {
	all, _ := s.ListBudgetsByUser(ctx, userID)
	return storage.Page(all, page, pageSize)
}

func (s *Store) GetBudgetByCategory(ctx context.Context, categoryID int) (*models.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matches := sortedByID(s.budgets, func(b models.Budget) bool { return b.CategoryID == categoryID })
	if len(matches) == 0 {
		return nil, notFound("budget for category", categoryID)
	}
	return &matches[0], nil
}

func (s *Store) CreateBudget(ctx context.Context, budget *models.Budget) error {
	if budget == nil {
		return fmt.Errorf("%w: nil budget", storage.ErrInvalidArgument)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[budget.CategoryID]; !ok {
		return fmt.Errorf("%w: category %d does not exist", storage.ErrInvalidArgument, budget.CategoryID)
	}
	budget.ID = s.id()
	budget.StartDate = models.Day(budget.StartDate)
	budget.EndDate = models.Day(budget.EndDate)
	s.budgets[budget.ID] = *budget
	return nil
}

func (s *Store) UpdateBudget(ctx context.Context, budget *models.Budget) error {
	if budget == nil {
		return fmt.Errorf("%w: nil budget", storage.ErrInvalidArgument)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.budgets[budget.ID]; !ok {
		return notFound("budget", budget.ID)
	}
	if _, ok := s.categories[budget.CategoryID]; !ok {
		return fmt.Errorf("%w: category %d does not exist", storage.ErrInvalidArgument, budget.CategoryID)
	}
	budget.StartDate = models.Day(budget.StartDate)
	budget.EndDate = models.Day(budget.EndDate)
	s.budgets[budget.ID] = *budget
	return nil
}

func (s *Store) DeleteBudget(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.budgets[id]; !ok {
		return notFound("budget", id)
	}
	delete(s.budgets, id)
	return nil
}

// Saving goals

func (s *Store) GetSavingGoalByID(ctx context.Context, id int) (*models.SavingGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.goals[id]
	if !ok {
		return nil, notFound("saving goal", id)
	}
	return &g, nil
}

func (s *Store) ListSavingGoalsByUser(ctx context.Context, userID int) ([]models.SavingGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.goals, func(g models.SavingGoal) bool { return g.UserID == userID }), nil
}

func (s *Store) ListSavingGoalsByUserPaged(ctx context.Context, userID, page, pageSize int) ([]models.SavingGoal, error) {
	all, _ := s.ListSavingGoalsByUser(ctx, userID)
	return storage.Page(all, page, pageSize)
}

func (s *Store) CreateSavingGoal(ctx context.Context, goal *models.SavingGoal) error {
	if goal == nil {
		return fmt.Errorf("%w: nil saving goal", storage.ErrInvalidArgument)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[goal.UserID]; !ok {
		return fmt.Errorf("%w: user %d does not exist", storage.ErrInvalidArgument, goal.UserID)
	}
	goal.ID = s.id()
	goal.Deadline = models.Day(goal.Deadline)
	s.goals[goal.ID] = *goal
	return nil
}

func (s *Store) UpdateSavingGoal(ctx context.Context, goal *models.SavingGoal) error {
	if goal == nil {
		return fmt.Errorf("%w: nil saving goal", storage.ErrInvalidArgument)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.goals[goal.ID]; !ok {
		return notFound("saving goal", goal.ID)
	}
	if _, ok := s.users[goal.UserID]; !ok {
		return fmt.Errorf("%w: user %d does not exist", storage.ErrInvalidArgument, goal.UserID)
	}
	goal.Deadline = models.Day(goal.Deadline)
	s.goals[goal.ID] = *goal
	return nil
}

func (s *Store) DeleteSavingGoal(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.goals[id]; !ok {
		return notFound("saving goal", id)
	}
	delete(s.goals, id)
	return nil
}
