package api

import (
	"context"

	"github.com/youridegraef/qash-backend-sub000/internal/service"
)

// Owned loads an entity through get and reports a NotFoundError when it
// belongs to someone other than userID, so foreign ids look missing.
func Owned[T any](ctx context.Context, userID, id int, entity string,
	get func(context.Context, int) (*T, error), owner func(*T) int) (*T, error) {
	v, err := get(ctx, id)
	if err != nil {
		return nil, err
	}
	if owner(v) != userID {
		return nil, &service.NotFoundError{Entity: entity, Key: id}
	}
	return v, nil
}

// CheckReferences verifies that the category and every tag a transaction
// points at belong to userID. Non-positive ids are left for the service
// to reject.
func CheckReferences(ctx context.Context, svc *service.Services, userID, categoryID int, tagIDs []int) error {
	if categoryID > 0 {
		if _, err := Owned(ctx, userID, categoryID, service.EntityCategory, svc.Categories.GetByID, CategoryOwner); err != nil {
			return err
		}
	}
	for _, id := range tagIDs {
		if id <= 0 {
			continue
		}
		if _, err := Owned(ctx, userID, id, service.EntityTag, svc.Tags.GetByID, TagOwner); err != nil {
			return err
		}
	}
	return nil
}

func CategoryOwner(c *service.CategoryDTO) int       { return c.UserID }
func TagOwner(t *service.TagDTO) int                 { return t.UserID }
func TransactionOwner(t *service.TransactionDTO) int { return t.UserID }
func BudgetOwner(b *service.BudgetDTO) int           { return b.UserID }
func SavingGoalOwner(g *service.SavingGoalDTO) int   { return g.UserID }
