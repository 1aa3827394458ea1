package transaction

import (
	"errors"
	"math"
	"strings"
	"time"

	"expensync/internal/domain/validation"

	"github.com/shopspring/decimal"
)

const (
	DefaultCategory = "Others"
	DefaultPage     = 1
	DefaultLimit    = 10
	MaxLimit        = 100

	// MaxPage keeps (Page-1)*Limit within 32 bits.
	MaxPage = math.MaxInt32 / MaxLimit
)

// Categories offered by the client. Any non-empty category is accepted.
var Categories = []string{"Food", "Entertainment", "Travel", "Utilities", "Income", "Others"}

var (
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrTitleAndAmountRequired = validation.New("title and amount are required")
	ErrInvalidDate            = validation.New("date must be RFC3339 or YYYY-MM-DD")
)

// Transaction is a user-entered financial event. Positive amounts are income,
// negative amounts are expenses.
type Transaction struct {
	ID        string          `json:"id"`
	UserID    int64           `json:"-"`
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Note      string          `json:"note"`
	Tags      []string        `json:"tags"`
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// IsExpense reports whether the transaction reduces the balance.
func (t *Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

type CreateParams struct {
	Title    string
	Amount   *decimal.Decimal
	Category string
	Note     string
	Tags     []string
	Date     *time.Time
}

// Normalize trims text fields and applies defaults. now is used when Date is unset.
func (p *CreateParams) Normalize(now time.Time) {
	p.Title = strings.TrimSpace(p.Title)
	p.Category = strings.TrimSpace(p.Category)
	if p.Category == "" {
		p.Category = DefaultCategory
	}
	p.Note = strings.TrimSpace(p.Note)
	p.Tags = NormalizeTags(p.Tags)
	if p.Date == nil || p.Date.IsZero() {
		d := now
		p.Date = &d
	}
}

func (p *CreateParams) Validate() error {
	if p.Title == "" || p.Amount == nil {
		return ErrTitleAndAmountRequired
	}
	if err := validation.Amount(*p.Amount); err != nil {
		return err
	}
	if len(p.Title) > 255 {
		return validation.New("title must be 255 characters or less")
	}
	if len(p.Category) > 64 {
		return validation.New("category must be 64 characters or less")
	}
	return nil
}

type UpdateParams struct {
	Title    *string
	Amount   *decimal.Decimal
	Category *string
	Note     *string
	Tags     *[]string
	Date     *time.Time
}

func (p *UpdateParams) Normalize() {
	if p.Title != nil {
		v := strings.TrimSpace(*p.Title)
		p.Title = &v
	}
	if p.Category != nil {
		v := strings.TrimSpace(*p.Category)
		if v == "" {
			v = DefaultCategory
		}
		p.Category = &v
	}
	if p.Note != nil {
		v := strings.TrimSpace(*p.Note)
		p.Note = &v
	}
	if p.Tags != nil {
		v := NormalizeTags(*p.Tags)
		p.Tags = &v
	}
}

func (p *UpdateParams) Validate() error {
	if p.Title != nil && *p.Title == "" {
		return validation.New("title cannot be empty")
	}
	if p.Amount != nil {
		if err := validation.Amount(*p.Amount); err != nil {
			return err
		}
	}
	if p.Title != nil && len(*p.Title) > 255 {
		return validation.New("title must be 255 characters or less")
	}
	if p.Category != nil && len(*p.Category) > 64 {
		return validation.New("category must be 64 characters or less")
	}
	return nil
}

// NormalizeTags trims each tag and drops empty ones. Never returns nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ParseDate accepts RFC3339 timestamps and plain YYYY-MM-DD dates (UTC midnight).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDate
}

// ListQuery selects one page of a user's transactions.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
	Filter string
}

// Normalize replaces out-of-range values with defaults and caps Page and
// Limit.
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Page > MaxPage {
		q.Page = MaxPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	q.Search = strings.TrimSpace(q.Search)
	q.Filter = strings.TrimSpace(q.Filter)
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Page is one page of results plus the information needed to fetch the next.
type Page struct {
	Transactions []*Transaction `json:"transactions"`
	CurrentPage  int            `json:"currentPage"`
	TotalPages   int            `json:"totalPages"`
	HasMore      bool           `json:"hasMore"`
	Total        int64          `json:"total"`
}

func NewPage(items []*Transaction, q ListQuery, total int64) *Page {
	if items == nil {
		items = []*Transaction{}
	}
	pages := (total + int64(q.Limit) - 1) / int64(q.Limit)
	return &Page{
		Transactions: items,
		CurrentPage:  q.Page,
		TotalPages:   int(pages),
		HasMore:      int64(q.Page) < pages,
		Total:        total,
	}
}

// Summary aggregates all of a user's transactions.
type Summary struct {
	TotalTransactions int64           `json:"totalTransactions"`
	Income            decimal.Decimal `json:"income"`
	Expense           decimal.Decimal `json:"expense"`
	Net               decimal.Decimal `json:"net"`
}

// Summarize computes a Summary in memory.
func Summarize(items []*Transaction) *Summary {
	s := &Summary{TotalTransactions: int64(len(items))}
	for _, t := range items {
		if t.IsExpense() {
			s.Expense = s.Expense.Add(t.Amount.Abs())
		} else {
			s.Income = s.Income.Add(t.Amount)
		}
	}
	s.Net = s.Income.Sub(s.Expense)
	return s
}

// MonthRange returns [first instant of t's month, first instant of next month).
// RunningSpend is a category's spending in a period counted up to and
// including one transaction, in (date, created_at, id) order.
type RunningSpend struct {
	Category string
	Amount   decimal.Decimal
	Spent    decimal.Decimal
}

// Before is the spending just before the transaction was added.
func (r RunningSpend) Before() decimal.Decimal {
	if !r.Amount.IsNegative() {
		return r.Spent
	}
	return r.Spent.Sub(r.Amount.Abs())
}

func MonthRange(t time.Time) (time.Time, time.Time) {
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return from, from.AddDate(0, 1, 0)
}
