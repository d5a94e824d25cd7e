package graphql

import (
	"context"
	"time"

	"github.com/youridegraef/qash-backend-sub000/internal/api"
	"github.com/youridegraef/qash-backend-sub000/internal/middleware"
	"github.com/youridegraef/qash-backend-sub000/internal/models"
	"github.com/youridegraef/qash-backend-sub000/internal/service"
)

// Resolver is the root Query resolver.
type Resolver struct {
	svc *service.Services
}

type idArgs struct {
	ID int32
}

type pageArgs struct {
	Page     *int32
	PageSize *int32
}

func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	u, err := r.svc.Users.GetByID(ctx, middleware.GetUserID(ctx))
	if err != nil {
		return nil, wrap(err)
	}
	return &userResolver{dto: service.NewUserDTO(u)}, nil
}

func (r *Resolver) Transactions(ctx context.Context, args pageArgs) ([]*transactionResolver, error) {
	userID := middleware.GetUserID(ctx)
	var (
		txs []service.TransactionDTO
		err error
	)
	if args.Page != nil || args.PageSize != nil {
		page, size := int32(1), int32(20)
		if args.Page != nil {
			page = *args.Page
		}
		if args.PageSize != nil {
			size = *args.PageSize
		}
		txs, err = r.svc.Transactions.GetByUserIDPaged(ctx, userID, int(page), int(size))
	} else {
		txs, err = r.svc.Transactions.GetByUserID(ctx, userID)
	}
	if err != nil {
		return nil, wrap(err)
	}
	out := make([]*transactionResolver, len(txs))
	for i := range txs {
		out[i] = &transactionResolver{svc: r.svc, dto: txs[i]}
	}
	return out, nil
}

func (r *Resolver) Transaction(ctx context.Context, args idArgs) (*transactionResolver, error) {
	v, err := api.Owned(ctx, middleware.GetUserID(ctx), int(args.ID), service.EntityTransaction,
		r.svc.Transactions.GetByID, api.TransactionOwner)
	if err != nil {
		return nil, wrap(err)
	}
	return &transactionResolver{svc: r.svc, dto: *v}, nil
}

func (r *Resolver) Summary(ctx context.Context) (*summaryResolver, error) {
	s, err := r.svc.Transactions.GetSummary(ctx, middleware.GetUserID(ctx))
	if err != nil {
		return nil, wrap(err)
	}
	return &summaryResolver{dto: *s}, nil
}

func (r *Resolver) Categories(ctx context.Context) ([]*categoryResolver, error) {
	cats, err := r.svc.Categories.GetByUserID(ctx, middleware.GetUserID(ctx))
	if err != nil {
		return nil, wrap(err)
	}
	out := make([]*categoryResolver, len(cats))
	for i := range cats {
		out[i] = &categoryResolver{svc: r.svc, dto: cats[i]}
	}
	return out, nil
}

func (r *Resolver) Category(ctx context.Context, args idArgs) (*categoryResolver, error) {
	v, err := api.Owned(ctx, middleware.GetUserID(ctx), int(args.ID), service.EntityCategory,
		r.svc.Categories.GetByID, api.CategoryOwner)
	if err != nil {
		return nil, wrap(err)
	}
	return &categoryResolver{svc: r.svc, dto: *v}, nil
}

func (r *Resolver) Tags(ctx context.Context) ([]*tagResolver, error) {
	tags, err := r.svc.Tags.GetByUserID(ctx, middleware.GetUserID(ctx))
	if err != nil {
		return nil, wrap(err)
	}
	return tagResolvers(tags), nil
}

func (r *Resolver) Budgets(ctx context.Context) ([]*budgetResolver, error) {
	budgets, err := r.svc.Budgets.GetByUserID(ctx, middleware.GetUserID(ctx))
	if err != nil {
		return nil, wrap(err)
	}
	out := make([]*budgetResolver, len(budgets))
	for i := range budgets {
		out[i] = &budgetResolver{svc: r.svc, dto: budgets[i]}
	}
	return out, nil
}

func (r *Resolver) Budget(ctx context.Context, args idArgs) (*budgetResolver, error) {
	v, err := api.Owned(ctx, middleware.GetUserID(ctx), int(args.ID), service.EntityBudget,
		r.svc.Budgets.GetByID, api.BudgetOwner)
	if err != nil {
		return nil, wrap(err)
	}
	return &budgetResolver{svc: r.svc, dto: *v}, nil
}

func (r *Resolver) SavingGoals(ctx context.Context) ([]*savingGoalResolver, error) {
	goals, err := r.svc.SavingGoals.GetByUserID(ctx, middleware.GetUserID(ctx))
	if err != nil {
		return nil, wrap(err)
	}
	out := make([]*savingGoalResolver, len(goals))
	for i := range goals {
		out[i] = &savingGoalResolver{dto: goals[i]}
	}
	return out, nil
}

func (r *Resolver) SavingGoal(ctx context.Context, args idArgs) (*savingGoalResolver, error) {
	v, err := api.Owned(ctx, middleware.GetUserID(ctx), int(args.ID), service.EntitySavingGoal,
		r.svc.SavingGoals.GetByID, api.SavingGoalOwner)
	if err != nil {
		return nil, wrap(err)
	}
	return &savingGoalResolver{dto: *v}, nil
}

func formatDay(t time.Time) string {
	return t.Format(models.DateLayout)
}
