package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"expensync/internal/domain/budget"
	"expensync/internal/domain/categorygoal"
	"expensync/internal/domain/debt"
	"expensync/internal/domain/reminder"
	"expensync/internal/domain/session"
	"expensync/internal/domain/summary"
	"expensync/internal/domain/transaction"
	"expensync/internal/domain/user"

	"github.com/shopspring/decimal"
)

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TransactionInput struct {
	Title    string           `json:"title,omitempty"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Category string           `json:"category,omitempty"`
	Note     string           `json:"note,omitempty"`
	Tags     []string         `json:"tags,omitempty"`
	Date     string           `json:"date,omitempty"`
}

type BudgetInput struct {
	Title    string          `json:"title"`
	Category string          `json:"category,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	Month    string          `json:"month,omitempty"`
}

type DebtInput struct {
	Title    string          `json:"title"`
	Creditor string          `json:"creditor,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	DueDate  string          `json:"dueDate,omitempty"`
	Note     string          `json:"note,omitempty"`
}

type ReminderInput struct {
	Title   string           `json:"title"`
	Amount  *decimal.Decimal `json:"amount,omitempty"`
	DueDate string           `json:"dueDate"`
	Note    string           `json:"note,omitempty"`
}

// ListParams selects a page of transactions. Zero values use server defaults.
type ListParams struct {
	Page   int
	Limit  int
	Search string
	Filter string
}

func (p ListParams) query() string {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Filter != "" {
		v.Set("filter", p.Filter)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// Ping calls the API root and returns its greeting.
func (c *Client) Ping(ctx context.Context) (string, error) {
	var greeting string
	if err := c.do(ctx, http.MethodGet, "", nil, &greeting, SkipLoader()); err != nil {
		return "", err
	}
	return greeting, nil
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) (*user.User, error) {
	var resp struct {
		User *user.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/signup", req, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Login stores the returned token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*session.Tokens, error) {
	var tokens session.Tokens
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &tokens); err != nil {
		return nil, err
	}
	creds := Credentials{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}
	if tokens.User != nil {
		creds.Email = tokens.User.Email
	}
	if err := c.tokens.Save(creds); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// Logout revokes the refresh token server-side and always clears local
// credentials. The server call is best effort.
func (c *Client) Logout(ctx context.Context) error {
	creds, err := c.tokens.Load()
	if err != nil {
		return err
	}
	if creds.RefreshToken != "" {
		body := map[string]string{"refreshToken": creds.RefreshToken}
		if err := c.do(ctx, http.MethodPost, "/auth/logout", body, nil, SkipLoader()); err != nil {
			c.log.Debug("server logout failed")
		}
	}
	return c.tokens.Clear()
}

func (c *Client) Me(ctx context.Context) (*user.User, error) {
	var u user.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) ListTransactions(ctx context.Context, p ListParams) (*transaction.Page, error) {
	var page transaction.Page
	if err := c.do(ctx, http.MethodGet, "/transactions"+p.query(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) CreateTransaction(ctx context.Context, in TransactionInput) (*transaction.Transaction, error) {
	var t transaction.Transaction
	if err := c.do(ctx, http.MethodPost, "/transactions/create", in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) GetTransaction(ctx context.Context, id string) (*transaction.Transaction, error) {
	var t transaction.Transaction
	if err := c.do(ctx, http.MethodGet, "/transactions/"+url.PathEscape(id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, id string, in TransactionInput) (*transaction.Transaction, error) {
	var t transaction.Transaction
	if err := c.do(ctx, http.MethodPut, "/transactions/"+url.PathEscape(id), in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTransaction returns the user's remaining transactions.
func (c *Client) DeleteTransaction(ctx context.Context, id string) ([]*transaction.Transaction, error) {
	var resp struct {
		Transactions []*transaction.Transaction `json:"transactions"`
	}
	if err := c.do(ctx, http.MethodDelete, "/transactions/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}

func (c *Client) TransactionSummary(ctx context.Context) (*transaction.Summary, error) {
	var s transaction.Summary
	if err := c.do(ctx, http.MethodGet, "/transactions/summary", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) Budgets(ctx context.Context) ([]*budget.Budget, error) {
	var out []*budget.Budget
	if err := c.do(ctx, http.MethodGet, "/budgets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddBudget(ctx context.Context, in BudgetInput) (*budget.Budget, error) {
	var b budget.Budget
	if err := c.do(ctx, http.MethodPost, "/budgets", in, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) DeleteBudget(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/budgets/"+url.PathEscape(id), nil, nil)
}

func (c *Client) CategoryGoals(ctx context.Context) ([]categorygoal.Goal, error) {
	var resp struct {
		CategoryGoals []categorygoal.Goal `json:"categoryGoals"`
	}
	if err := c.do(ctx, http.MethodGet, "/category-goals", nil, &resp, SkipLoader()); err != nil {
		return nil, err
	}
	return resp.CategoryGoals, nil
}

func (c *Client) SetCategoryGoals(ctx context.Context, goals []categorygoal.Goal) error {
	body := struct {
		CategoryGoals []categorygoal.Goal `json:"categoryGoals"`
	}{goals}
	return c.do(ctx, http.MethodPost, "/category-goals/set", body, nil, SkipLoader())
}

func (c *Client) Debts(ctx context.Context) ([]*debt.Debt, error) {
	var out []*debt.Debt
	if err := c.do(ctx, http.MethodGet, "/debts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddDebt(ctx context.Context, in DebtInput) (*debt.Debt, error) {
	var d debt.Debt
	if err := c.do(ctx, http.MethodPost, "/debts/create", in, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *Client) DeleteDebt(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/debts/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Reminders(ctx context.Context) ([]*reminder.Reminder, error) {
	var out []*reminder.Reminder
	if err := c.do(ctx, http.MethodGet, "/reminders", nil, &out, SkipLoader()); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddReminder(ctx context.Context, in ReminderInput) (*reminder.Reminder, error) {
	var r reminder.Reminder
	if err := c.do(ctx, http.MethodPost, "/reminders/create", in, &r, SkipLoader()); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) DeleteReminder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/reminders/"+url.PathEscape(id), nil, nil, SkipLoader())
}

func (c *Client) Summary(ctx context.Context) (*summary.Summary, error) {
	var s summary.Summary
	if err := c.do(ctx, http.MethodGet, "/summary", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) Dashboard(ctx context.Context) (*summary.Dashboard, error) {
	var d summary.Dashboard
	if err := c.do(ctx, http.MethodGet, "/dashboard", nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// RegisterDevice registers a push token for the current user.
func (c *Client) RegisterDevice(ctx context.Context, token, platform string) error {
	body := map[string]string{"token": token, "platform": platform}
	return c.do(ctx, http.MethodPost, "/notifications/devices", body, nil, SkipLoader())
}
