package graphql

import (
	"context"
	"time"

	"github.com/youridegraef/qash-backend-sub000/internal/models"
	"github.com/youridegraef/qash-backend-sub000/internal/service"
)

type userResolver struct {
	dto service.UserDTO
}

func (r *userResolver) ID() int32     { return int32(r.dto.ID) }
func (r *userResolver) Name() string  { return r.dto.Name }
func (r *userResolver) Email() string { return r.dto.Email }

func (r *userResolver) DateOfBirth() *string {
	if r.dto.DateOfBirth == nil {
		return nil
	}
	s := formatDay(*r.dto.DateOfBirth)
	return &s
}

type summaryResolver struct {
	dto service.SummaryDTO
}

func (r *summaryResolver) Balance() float64  { return r.dto.Balance }
func (r *summaryResolver) Income() float64   { return r.dto.Income }
func (r *summaryResolver) Expenses() float64 { return r.dto.Expenses }

type categoryResolver struct {
	svc *service.Services
	dto service.CategoryDTO
}

type spendingsArgs struct {
	Start *string
	End   *string
}

func (r *categoryResolver) ID() int32     { return int32(r.dto.ID) }
func (r *categoryResolver) Name() string  { return r.dto.Name }
func (r *categoryResolver) Color() string { return r.dto.Color }

func (r *categoryResolver) Spendings(ctx context.Context, args spendingsArgs) (float64, error) {
	if args.Start == nil && args.End == nil {
		total, err := r.svc.Categories.CalculateSpendingsByCategory(ctx, r.dto.ID)
		return total, wrap(err)
	}
	start, err := parseDayArg("start", args.Start)
	if err != nil {
		return 0, err
	}
	end, err := parseDayArg("end", args.End)
	if err != nil {
		return 0, err
	}
	total, err := r.svc.Categories.CalculateSpendingsByCategoryAndDateRange(ctx, r.dto.ID, start, end)
	return total, wrap(err)
}

type tagResolver struct {
	dto service.TagDTO
}

func (r *tagResolver) ID() int32     { return int32(r.dto.ID) }
func (r *tagResolver) Name() string  { return r.dto.Name }
func (r *tagResolver) Color() string { return r.dto.Color }

func tagResolvers(tags []service.TagDTO) []*tagResolver {
	out := make([]*tagResolver, len(tags))
	for i := range tags {
		out[i] = &tagResolver{dto: tags[i]}
	}
	return out
}

type transactionResolver struct {
	svc *service.Services
	dto service.TransactionDTO
}

func (r *transactionResolver) ID() int32            { return int32(r.dto.ID) }
func (r *transactionResolver) Description() string  { return r.dto.Description }
func (r *transactionResolver) Amount() float64      { return r.dto.Amount }
func (r *transactionResolver) Date() string         { return formatDay(r.dto.Date) }
func (r *transactionResolver) Tags() []*tagResolver { return tagResolvers(r.dto.Tags) }

func (r *transactionResolver) IsIncome() bool {
	return models.Transaction{Amount: r.dto.Amount}.IsIncome()
}

func (r *transactionResolver) Category() *categoryResolver {
	if r.dto.Category == nil {
		return nil
	}
	return &categoryResolver{svc: r.svc, dto: *r.dto.Category}
}

type budgetResolver struct {
	svc *service.Services
	dto service.BudgetDTO
}

func (r *budgetResolver) ID() int32         { return int32(r.dto.ID) }
func (r *budgetResolver) StartDate() string { return formatDay(r.dto.StartDate) }
func (r *budgetResolver) EndDate() string   { return formatDay(r.dto.EndDate) }
func (r *budgetResolver) Target() float64   { return r.dto.Target }
func (r *budgetResolver) Spent() float64    { return r.dto.Spent }

func (r *budgetResolver) Category(ctx context.Context) (*categoryResolver, error) {
	c, err := r.svc.Categories.GetByID(ctx, r.dto.CategoryID)
	if err != nil {
		return nil, wrap(err)
	}
	return &categoryResolver{svc: r.svc, dto: *c}, nil
}

type savingGoalResolver struct {
	dto service.SavingGoalDTO
}

func (r *savingGoalResolver) ID() int32            { return int32(r.dto.ID) }
func (r *savingGoalResolver) Name() string         { return r.dto.Name }
func (r *savingGoalResolver) Target() float64      { return r.dto.Target }
func (r *savingGoalResolver) AmountSaved() float64 { return r.dto.AmountSaved }
func (r *savingGoalResolver) Deadline() string     { return formatDay(r.dto.Deadline) }

func parseDayArg(name string, v *string) (t time.Time, err error) {
	if v == nil {
		return t, wrap(&service.ValidationError{Field: name, Value: "", Message: name + " is required with a date range"})
	}
	t, err = models.ParseDay(*v)
	if err != nil {
		return t, wrap(&service.ValidationError{Field: name, Value: *v, Message: name + " must be YYYY-MM-DD"})
	}
	return t, nil
}
