package budget

import (
	"errors"
	"strings"
	"time"

	"expensync/internal/domain/validation"

	"github.com/shopspring/decimal"
)

const MonthLayout = "2006-01"

var (
	ErrBudgetNotFound = errors.New("budget not found")
	ErrInvalidMonth   = validation.New("month must be YYYY-MM")
)

// Budget is a planned spending amount for a month, optionally tied to a category.
type Budget struct {
	ID        string          `json:"id"`
	UserID    int64           `json:"-"`
	Title     string          `json:"title"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Month     string          `json:"month"`
	CreatedAt time.Time       `json:"createdAt"`
}

type CreateParams struct {
	Title    string
	Category string
	Amount   *decimal.Decimal
	Month    string
}

func (p *CreateParams) Normalize(now time.Time) {
	p.Title = strings.TrimSpace(p.Title)
	p.Category = strings.TrimSpace(p.Category)
	if p.Category == "" {
		p.Category = "Others"
	}
	p.Month = strings.TrimSpace(p.Month)
	if p.Month == "" {
		p.Month = now.Format(MonthLayout)
	}
}

func (p *CreateParams) Validate() error {
	if p.Title == "" {
		return validation.New("title is required")
	}
	if p.Amount == nil {
		return validation.New("amount is required")
	}
	if !p.Amount.IsPositive() {
		return validation.New("amount must be greater than zero")
	}
	if err := validation.Amount(*p.Amount); err != nil {
		return err
	}
	if _, err := time.Parse(MonthLayout, p.Month); err != nil {
		return ErrInvalidMonth
	}
	return nil
}
