package postgres

import (
	"context"
	"fmt"

	"expensync/internal/domain/budget"

	"github.com/shopspring/decimal"
)

type BudgetRepository struct {
	db *DB
}

func NewBudgetRepository(db *DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

const budgetColumns = `id, user_id, title, category, amount, month, created_at`

func scanBudget(row rowScanner) (*budget.Budget, error) {
	var b budget.Budget
	if err := row.Scan(&b.ID, &b.UserID, &b.Title, &b.Category, &b.Amount, &b.Month, &b.CreatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BudgetRepository) Create(ctx context.Context, userID int64, params budget.CreateParams) (*budget.Budget, error) {
	query := `
		INSERT INTO budgets (user_id, title, category, amount, month)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + budgetColumns

	b, err := scanBudget(r.db.QueryRowContext(ctx, query, userID, params.Title, params.Category, *params.Amount, params.Month))
	if err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}
	return b, nil
}

func (r *BudgetRepository) ListByUserID(ctx context.Context, userID int64) ([]*budget.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE user_id = $1
		ORDER BY month DESC, title
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*budget.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}
	return budgets, nil
}

func (r *BudgetRepository) Delete(ctx context.Context, userID int64, id string) error {
	return deleteOwned(ctx, r.db, "budgets", userID, id, budget.ErrBudgetNotFound)
}

func (r *BudgetRepository) TotalForMonth(ctx context.Context, userID int64, month string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM budgets WHERE user_id = $1 AND month = $2`,
		userID, month,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to total budgets: %w", err)
	}
	return total, nil
}
