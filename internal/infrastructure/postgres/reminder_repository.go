package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"expensync/internal/domain/reminder"

	"github.com/shopspring/decimal"
)

type ReminderRepository struct {
	db *DB
}

func NewReminderRepository(db *DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

const reminderColumns = `id, user_id, title, amount, due_date, note, notified_at, created_at`

func scanReminder(row rowScanner) (*reminder.Reminder, error) {
	var rm reminder.Reminder
	var amount decimal.NullDecimal
	var notifiedAt sql.NullTime
	if err := row.Scan(&rm.ID, &rm.UserID, &rm.Title, &amount, &rm.DueDate, &rm.Note, &notifiedAt, &rm.CreatedAt); err != nil {
		return nil, err
	}
	if amount.Valid {
		rm.Amount = &amount.Decimal
	}
	if notifiedAt.Valid {
		rm.NotifiedAt = &notifiedAt.Time
	}
	return &rm, nil
}

func (r *ReminderRepository) queryReminders(ctx context.Context, query string, args ...any) ([]*reminder.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	var reminders []*reminder.Reminder
	for rows.Next() {
		rm, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reminders: %w", err)
	}
	return reminders, nil
}

func (r *ReminderRepository) Create(ctx context.Context, userID int64, params reminder.CreateParams) (*reminder.Reminder, error) {
	var amount decimal.NullDecimal
	if params.Amount != nil {
		amount = decimal.NewNullDecimal(*params.Amount)
	}

	query := `
		INSERT INTO reminders (user_id, title, amount, due_date, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + reminderColumns

	rm, err := scanReminder(r.db.QueryRowContext(ctx, query, userID, params.Title, amount, *params.DueDate, params.Note))
	if err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}
	return rm, nil
}

func (r *ReminderRepository) ListByUserID(ctx context.Context, userID int64) ([]*reminder.Reminder, error) {
	return r.queryReminders(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders
		WHERE user_id = $1
		ORDER BY due_date, created_at
	`, userID)
}

func (r *ReminderRepository) Delete(ctx context.Context, userID int64, id string) error {
	return deleteOwned(ctx, r.db, "reminders", userID, id, reminder.ErrReminderNotFound)
}

func (r *ReminderRepository) Upcoming(ctx context.Context, userID int64, from time.Time, limit int) ([]*reminder.Reminder, error) {
	return r.queryReminders(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders
		WHERE user_id = $1 AND due_date >= $2
		ORDER BY due_date, created_at
		LIMIT $3
	`, userID, from, limit)
}

func (r *ReminderRepository) UsersWithDue(ctx context.Context, before time.Time) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT user_id FROM reminders WHERE notified_at IS NULL AND due_date < $1 ORDER BY user_id`,
		before,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users with due reminders: %w", err)
	}
	defer rows.Close()

	var userIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, rows.Err()
}

func (r *ReminderRepository) DueForUser(ctx context.Context, userID int64, before time.Time) ([]*reminder.Reminder, error) {
	return r.queryReminders(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders
		WHERE user_id = $1 AND notified_at IS NULL AND due_date < $2
		ORDER BY due_date
	`, userID, before)
}

func (r *ReminderRepository) Claim(ctx context.Context, id string, at time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reminders SET notified_at = $2 WHERE id = $1 AND notified_at IS NULL`,
		id, at,
	)
	if err != nil {
		return false, fmt.Errorf("failed to claim reminder: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return rowsAffected == 1, nil
}

// Release only clears a claim made at the same instant, leaving another
// run's stamp alone.
func (r *ReminderRepository) Release(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE reminders SET notified_at = NULL WHERE id = $1 AND notified_at = $2`,
		id, at,
	)
	if err != nil {
		return fmt.Errorf("failed to release reminder: %w", err)
	}
	return nil
}
