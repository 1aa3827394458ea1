package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"expensync/internal/domain/transaction"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type TransactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, user_id, title, amount, category, note, tags, date, created_at, updated_at`

func scanTransaction(row rowScanner) (*transaction.Transaction, error) {
	var t transaction.Transaction
	err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Amount, &t.Category, &t.Note,
		pq.Array(&t.Tags), &t.Date, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return &t, nil
}

func (r *TransactionRepository) Create(ctx context.Context, userID int64, params transaction.CreateParams) (*transaction.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, title, amount, category, note, tags, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + transactionColumns

	t, err := scanTransaction(r.db.QueryRowContext(ctx, query,
		userID, params.Title, *params.Amount, params.Category, params.Note,
		pq.Array(params.Tags), *params.Date,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return t, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, userID int64, id string) (*transaction.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 AND user_id = $2`

	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return t, nil
}

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// listFilter builds the WHERE clause shared by the page and count queries.
func listFilter(userID int64, q transaction.ListQuery) (string, []any) {
	conds := []string{"user_id = $1"}
	args := []any{userID}

	if q.Search != "" {
		args = append(args, "%"+escapeLike(q.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(title ILIKE $%d OR note ILIKE $%d OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE $%d))",
			n, n, n,
		))
	}
	if q.Filter != "" {
		args = append(args, q.Filter)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	return strings.Join(conds, " AND "), args
}

func (r *TransactionRepository) List(ctx context.Context, userID int64, q transaction.ListQuery) ([]*transaction.Transaction, int64, error) {
	where, args := listFilter(userID, q)

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions
		WHERE %s
		ORDER BY date DESC, created_at DESC, id
		LIMIT $%d OFFSET $%d
	`, transactionColumns, where, n+1, n+2)

	items, err := r.query(ctx, query, append(args, q.Limit, q.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *TransactionRepository) ListAll(ctx context.Context, userID int64) ([]*transaction.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC, id
	`
	return r.query(ctx, query, userID)
}

func (r *TransactionRepository) query(ctx context.Context, query string, args ...any) ([]*transaction.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var items []*transaction.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return items, nil
}

func (r *TransactionRepository) Update(ctx context.Context, userID int64, id string, params transaction.UpdateParams) (*transaction.Transaction, error) {
	var amount, tags, date any
	if params.Amount != nil {
		amount = *params.Amount
	}
	if params.Tags != nil {
		tags = pq.Array(*params.Tags)
	}
	if params.Date != nil {
		date = *params.Date
	}

	query := `
		UPDATE transactions
		SET title = COALESCE($3, title),
		    amount = COALESCE($4::numeric, amount),
		    category = COALESCE($5, category),
		    note = COALESCE($6, note),
		    tags = COALESCE($7::text[], tags),
		    date = COALESCE($8::timestamptz, date),
		    updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + transactionColumns

	t, err := scanTransaction(r.db.QueryRowContext(ctx, query,
		id, userID, params.Title, amount, params.Category, params.Note, tags, date,
	))
	if err == sql.ErrNoRows {
		return nil, transaction.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return t, nil
}

func (r *TransactionRepository) Delete(ctx context.Context, userID int64, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return transaction.ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepository) Summarize(ctx context.Context, userID int64) (*transaction.Summary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(amount) FILTER (WHERE amount >= 0), 0),
		       COALESCE(SUM(-amount) FILTER (WHERE amount < 0), 0)
		FROM transactions
		WHERE user_id = $1
	`

	var s transaction.Summary
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&s.TotalTransactions, &s.Income, &s.Expense); err != nil {
		return nil, fmt.Errorf("failed to summarize transactions: %w", err)
	}
	s.Net = s.Income.Sub(s.Expense)
	return &s, nil
}

func (r *TransactionRepository) SpentByCategory(ctx context.Context, userID int64, from, to time.Time) (map[string]decimal.Decimal, error) {
	query := `
		SELECT category, SUM(-amount)
		FROM transactions
		WHERE user_id = $1 AND amount < 0 AND date >= $2 AND date < $3
		GROUP BY category
	`

	rows, err := r.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to sum spending by category: %w", err)
	}
	defer rows.Close()

	spent := make(map[string]decimal.Decimal)
	for rows.Next() {
		var category string
		var total decimal.Decimal
		if err := rows.Scan(&category, &total); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		spent[category] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category totals: %w", err)
	}
	return spent, nil
}

func (r *TransactionRepository) SpentThrough(ctx context.Context, userID int64, id string, from, to time.Time) (*transaction.RunningSpend, error) {
	query := `
		WITH t AS (
			SELECT id, amount, category, date, created_at
			FROM transactions
			WHERE id = $2 AND user_id = $1
		)
		SELECT t.category, t.amount, COALESCE(SUM(-x.amount), 0)
		FROM t
		LEFT JOIN transactions x
		       ON x.user_id = $1
		      AND x.category = t.category
		      AND x.amount < 0
		      AND x.date >= $3 AND x.date < $4
		      AND (x.date, x.created_at, x.id) <= (t.date, t.created_at, t.id)
		GROUP BY t.category, t.amount
	`

	var rs transaction.RunningSpend
	err := r.db.QueryRowContext(ctx, query, userID, id, from, to).Scan(&rs.Category, &rs.Amount, &rs.Spent)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to sum running spending: %w", err)
	}
	return &rs, nil
}
