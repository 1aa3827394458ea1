package summary

import (
	"context"
	"sort"
	"time"

	"expensync/internal/domain/budget"
	"expensync/internal/domain/categorygoal"
	"expensync/internal/domain/debt"
	"expensync/internal/domain/reminder"
	"expensync/internal/domain/transaction"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type TransactionSource interface {
	Summary(ctx context.Context, userID int64) (*transaction.Summary, error)
	SpentByCategory(ctx context.Context, userID int64, from, to time.Time) (map[string]decimal.Decimal, error)
	List(ctx context.Context, userID int64, q transaction.ListQuery) (*transaction.Page, error)
}

type BudgetSource interface {
	TotalForMonth(ctx context.Context, userID int64, month string) (decimal.Decimal, error)
}

type GoalSource interface {
	List(ctx context.Context, userID int64) ([]categorygoal.Goal, error)
}

type DebtSource interface {
	Total(ctx context.Context, userID int64) (decimal.Decimal, error)
	List(ctx context.Context, userID int64) ([]*debt.Debt, error)
}

type ReminderSource interface {
	Upcoming(ctx context.Context, userID int64) ([]*reminder.Reminder, error)
}

// CategoryRow is this month's spending in one category against its goal.
type CategoryRow struct {
	Category  string           `json:"category"`
	Spent     decimal.Decimal  `json:"spent"`
	Goal      *decimal.Decimal `json:"goal"`
	Remaining *decimal.Decimal `json:"remaining"`
	Exceeded  bool             `json:"exceeded"`
}

type Summary struct {
	TotalIncome     decimal.Decimal `json:"totalIncome"`
	TotalExpenses   decimal.Decimal `json:"totalExpenses"`
	Balance         decimal.Decimal `json:"balance"`
	TotalBudget     decimal.Decimal `json:"totalBudget"`
	BudgetRemaining decimal.Decimal `json:"budgetRemaining"`
	TotalDebt       decimal.Decimal `json:"totalDebt"`
	Month           string          `json:"month"`
	Categories      []CategoryRow   `json:"categories"`
}

type Dashboard struct {
	Summary       *Summary             `json:"summary"`
	Transactions  *transaction.Page    `json:"transactions"`
	CategoryGoals []categorygoal.Goal  `json:"categoryGoals"`
	Debts         []*debt.Debt         `json:"debts"`
	Reminders     []*reminder.Reminder `json:"reminders"`
}

type Service struct {
	transactions TransactionSource
	budgets      BudgetSource
	goals        GoalSource
	debts        DebtSource
	reminders    ReminderSource
	now          func() time.Time
}

func NewService(transactions TransactionSource, budgets BudgetSource, goals GoalSource, debts DebtSource, reminders ReminderSource) *Service {
	return &Service{
		transactions: transactions,
		budgets:      budgets,
		goals:        goals,
		debts:        debts,
		reminders:    reminders,
		now:          time.Now,
	}
}

// Summary combines all-time totals with the current month's budgets and
// per-category spending.
func (s *Service) Summary(ctx context.Context, userID int64) (*Summary, error) {
	now := s.now()
	month := now.Format(budget.MonthLayout)
	from, to := transaction.MonthRange(now)

	var (
		totals      *transaction.Summary
		spent       map[string]decimal.Decimal
		totalBudget decimal.Decimal
		goals       []categorygoal.Goal
		totalDebt   decimal.Decimal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		totals, err = s.transactions.Summary(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		spent, err = s.transactions.SpentByCategory(gctx, userID, from, to)
		return err
	})
	g.Go(func() (err error) {
		totalBudget, err = s.budgets.TotalForMonth(gctx, userID, month)
		return err
	})
	g.Go(func() (err error) {
		goals, err = s.goals.List(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		totalDebt, err = s.debts.Total(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	monthExpenses := decimal.Zero
	for _, v := range spent {
		monthExpenses = monthExpenses.Add(v)
	}

	return &Summary{
		TotalIncome:     totals.Income,
		TotalExpenses:   totals.Expense,
		Balance:         totals.Net,
		TotalBudget:     totalBudget,
		BudgetRemaining: totalBudget.Sub(monthExpenses),
		TotalDebt:       totalDebt,
		Month:           month,
		Categories:      categoryRows(spent, goals),
	}, nil
}

// categoryRows covers every category with a goal or with spending, sorted by name.
func categoryRows(spent map[string]decimal.Decimal, goals []categorygoal.Goal) []CategoryRow {
	byCategory := make(map[string]*CategoryRow)
	for category, amount := range spent {
		byCategory[category] = &CategoryRow{Category: category, Spent: amount}
	}
	for _, g := range goals {
		row, ok := byCategory[g.Category]
		if !ok {
			row = &CategoryRow{Category: g.Category, Spent: decimal.Zero}
			byCategory[g.Category] = row
		}
		goal := g.Goal
		remaining := goal.Sub(row.Spent)
		row.Goal = &goal
		row.Remaining = &remaining
		row.Exceeded = row.Spent.GreaterThan(goal)
	}

	rows := make([]CategoryRow, 0, len(byCategory))
	for _, row := range byCategory {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Category < rows[j].Category })
	return rows
}

// Dashboard fetches everything the home screen shows. Any failure fails the whole response.
func (s *Service) Dashboard(ctx context.Context, userID int64) (*Dashboard, error) {
	d := &Dashboard{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Summary, err = s.Summary(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		d.Transactions, err = s.transactions.List(gctx, userID, transaction.ListQuery{})
		return err
	})
	g.Go(func() (err error) {
		d.CategoryGoals, err = s.goals.List(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		d.Debts, err = s.debts.List(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		d.Reminders, err = s.reminders.Upcoming(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}
