package debt

import (
	"errors"
	"strings"
	"time"

	"expensync/internal/domain/validation"

	"github.com/shopspring/decimal"
)

var ErrDebtNotFound = errors.New("debt not found")

// Debt is money the user owes to a creditor.
type Debt struct {
	ID        string          `json:"id"`
	UserID    int64           `json:"-"`
	Title     string          `json:"title"`
	Creditor  string          `json:"creditor"`
	Amount    decimal.Decimal `json:"amount"`
	DueDate   *time.Time      `json:"dueDate,omitempty"`
	Note      string          `json:"note"`
	CreatedAt time.Time       `json:"createdAt"`
}

type CreateParams struct {
	Title    string
	Creditor string
	Amount   *decimal.Decimal
	DueDate  *time.Time
	Note     string
}

func (p *CreateParams) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Creditor = strings.TrimSpace(p.Creditor)
	p.Note = strings.TrimSpace(p.Note)
}

func (p *CreateParams) Validate() error {
	if p.Title == "" {
		return validation.New("title is required")
	}
	if p.Amount == nil || !p.Amount.IsPositive() {
		return validation.New("amount must be greater than zero")
	}
	if err := validation.Amount(*p.Amount); err != nil {
		return err
	}
	return nil
}
