package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"expensync/internal/domain/categorygoal"
)

type CategoryGoalRepository struct {
	db *DB
}

func NewCategoryGoalRepository(db *DB) *CategoryGoalRepository {
	return &CategoryGoalRepository{db: db}
}

// Upsert writes every goal in one transaction; a failure leaves all goals unchanged.
func (r *CategoryGoalRepository) Upsert(ctx context.Context, userID int64, goals []categorygoal.Goal) error {
	query := `
		INSERT INTO category_goals (user_id, category, goal)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, category) DO UPDATE
			SET goal = EXCLUDED.goal,
			    updated_at = NOW()
	`

	return r.db.InTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare goal upsert: %w", err)
		}
		defer stmt.Close()

		for _, g := range goals {
			if _, err := stmt.ExecContext(ctx, userID, g.Category, g.Goal); err != nil {
				return fmt.Errorf("failed to upsert goal for %q: %w", g.Category, err)
			}
		}
		return nil
	})
}

func (r *CategoryGoalRepository) ListByUserID(ctx context.Context, userID int64) ([]categorygoal.Goal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, goal FROM category_goals WHERE user_id = $1 ORDER BY category`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list category goals: %w", err)
	}
	defer rows.Close()

	var goals []categorygoal.Goal
	for rows.Next() {
		var g categorygoal.Goal
		if err := rows.Scan(&g.Category, &g.Goal); err != nil {
			return nil, fmt.Errorf("failed to scan category goal: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category goals: %w", err)
	}
	return goals, nil
}

func (r *CategoryGoalRepository) Get(ctx context.Context, userID int64, category string) (*categorygoal.Goal, error) {
	var g categorygoal.Goal
	err := r.db.QueryRowContext(ctx,
		`SELECT category, goal FROM category_goals WHERE user_id = $1 AND category = $2`,
		userID, category,
	).Scan(&g.Category, &g.Goal)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category goal: %w", err)
	}
	return &g, nil
}
