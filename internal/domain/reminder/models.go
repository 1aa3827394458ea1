package reminder

import (
	"errors"
	"strings"
	"time"

	"expensync/internal/domain/validation"

	"github.com/shopspring/decimal"
)

var (
	ErrReminderNotFound = errors.New("reminder not found")
	ErrTitleRequired    = validation.New("title is required")
	ErrDueDateRequired  = validation.New("a valid dueDate is required")
)

// Reminder is a dated payment the user wants to be told about.
type Reminder struct {
	ID         string           `json:"id"`
	UserID     int64            `json:"-"`
	Title      string           `json:"title"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	DueDate    time.Time        `json:"dueDate"`
	Note       string           `json:"note"`
	NotifiedAt *time.Time       `json:"notifiedAt,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
}

type CreateParams struct {
	Title   string
	Amount  *decimal.Decimal
	DueDate *time.Time
	Note    string
}

func (p *CreateParams) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Note = strings.TrimSpace(p.Note)
}

func (p *CreateParams) Validate() error {
	if p.Title == "" {
		return ErrTitleRequired
	}
	if p.DueDate == nil || p.DueDate.IsZero() {
		return ErrDueDateRequired
	}
	if p.Amount != nil && p.Amount.IsNegative() {
		return validation.New("amount cannot be negative")
	}
	if p.Amount != nil {
		if err := validation.Amount(*p.Amount); err != nil {
			return err
		}
	}
	return nil
}
