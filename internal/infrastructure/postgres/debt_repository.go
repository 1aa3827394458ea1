package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"expensync/internal/domain/debt"

	"github.com/shopspring/decimal"
)

type DebtRepository struct {
	db *DB
}

func NewDebtRepository(db *DB) *DebtRepository {
	return &DebtRepository{db: db}
}

const debtColumns = `id, user_id, title, creditor, amount, due_date, note, created_at`

func scanDebt(row rowScanner) (*debt.Debt, error) {
	var d debt.Debt
	var dueDate sql.NullTime
	if err := row.Scan(&d.ID, &d.UserID, &d.Title, &d.Creditor, &d.Amount, &dueDate, &d.Note, &d.CreatedAt); err != nil {
		return nil, err
	}
	if dueDate.Valid {
		d.DueDate = &dueDate.Time
	}
	return &d, nil
}

func (r *DebtRepository) Create(ctx context.Context, userID int64, params debt.CreateParams) (*debt.Debt, error) {
	query := `
		INSERT INTO debts (user_id, title, creditor, amount, due_date, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + debtColumns

	d, err := scanDebt(r.db.QueryRowContext(ctx, query,
		userID, params.Title, params.Creditor, *params.Amount, params.DueDate, params.Note,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create debt: %w", err)
	}
	return d, nil
}

func (r *DebtRepository) ListByUserID(ctx context.Context, userID int64) ([]*debt.Debt, error) {
	query := `
		SELECT ` + debtColumns + `
		FROM debts
		WHERE user_id = $1
		ORDER BY due_date ASC NULLS LAST, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	var debts []*debt.Debt
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating debts: %w", err)
	}
	return debts, nil
}

func (r *DebtRepository) Delete(ctx context.Context, userID int64, id string) error {
	return deleteOwned(ctx, r.db, "debts", userID, id, debt.ErrDebtNotFound)
}

func (r *DebtRepository) Total(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount), 0) FROM debts WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to total debts: %w", err)
	}
	return total, nil
}
