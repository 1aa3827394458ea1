package client

import (
	"context"
	"slices"
	"sync"

	"expensync/internal/domain/transaction"

	"github.com/shopspring/decimal"
)

const FeedPageSize = 10

// FeedAPI is the subset of Client the feed needs.
type FeedAPI interface {
	ListTransactions(ctx context.Context, p ListParams) (*transaction.Page, error)
	DeleteTransaction(ctx context.Context, id string) ([]*transaction.Transaction, error)
}

// Feed is the infinite-scroll transaction list. Changing the search or the
// filter starts over from page 1 and discards responses to the old query.
type Feed struct {
	api FeedAPI

	mu      sync.Mutex
	items   []*transaction.Transaction
	page    int
	hasMore bool
	loading bool
	search  string
	filter  string
	gen     uint64
}

func NewFeed(api FeedAPI) *Feed {
	return &Feed{api: api, hasMore: true, items: []*transaction.Transaction{}}
}

// Totals are computed over the loaded items. Spent is the (negative) sum of
// expenses; Net is Income plus Spent.
type Totals struct {
	Spent  decimal.Decimal
	Income decimal.Decimal
	Net    decimal.Decimal
}

func (f *Feed) Items() []*transaction.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.items)
}

func (f *Feed) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasMore
}

func (f *Feed) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

func (f *Feed) Page() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page
}

// Reload fetches page 1 and replaces the loaded items.
func (f *Feed) Reload(ctx context.Context) error {
	f.mu.Lock()
	f.gen++
	gen := f.gen
	f.loading = true
	params := ListParams{Page: 1, Limit: FeedPageSize, Search: f.search, Filter: f.filter}
	f.mu.Unlock()

	return f.fetch(ctx, gen, params, true)
}

// LoadMore appends the next page. It does nothing while a fetch is in flight
// or after the last page.
func (f *Feed) LoadMore(ctx context.Context) error {
	f.mu.Lock()
	if f.loading || !f.hasMore {
		f.mu.Unlock()
		return nil
	}
	f.loading = true
	gen := f.gen
	params := ListParams{Page: f.page + 1, Limit: FeedPageSize, Search: f.search, Filter: f.filter}
	f.mu.Unlock()

	return f.fetch(ctx, gen, params, false)
}

func (f *Feed) fetch(ctx context.Context, gen uint64, params ListParams, replace bool) error {
	page, err := f.api.ListTransactions(ctx, params)

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.gen {
		return nil
	}
	f.loading = false
	if err != nil {
		return err
	}

	if replace {
		f.items = slices.Clone(page.Transactions)
		if f.items == nil {
			f.items = []*transaction.Transaction{}
		}
	} else {
		f.items = append(f.items, page.Transactions...)
	}
	f.page = params.Page
	f.hasMore = page.HasMore
	return nil
}

func (f *Feed) SetSearch(ctx context.Context, search string) error {
	f.mu.Lock()
	f.search = search
	f.mu.Unlock()
	return f.Reload(ctx)
}

func (f *Feed) SetFilter(ctx context.Context, filter string) error {
	f.mu.Lock()
	f.filter = filter
	f.mu.Unlock()
	return f.Reload(ctx)
}

func (f *Feed) indexOf(id string) int {
	return slices.IndexFunc(f.items, func(t *transaction.Transaction) bool { return t.ID == id })
}

// Delete removes the item right away and restores it at its previous
// position if the API call fails. A reload that happened in the meantime
// already reflects the server, so its items are kept as they are.
func (f *Feed) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	gen := f.gen
	idx := f.indexOf(id)
	var removed *transaction.Transaction
	if idx >= 0 {
		removed = f.items[idx]
		f.items = slices.Delete(f.items, idx, idx+1)
	}
	f.mu.Unlock()

	if _, err := f.api.DeleteTransaction(ctx, id); err != nil {
		f.mu.Lock()
		if removed != nil && gen == f.gen && f.indexOf(id) < 0 {
			f.items = slices.Insert(f.items, min(idx, len(f.items)), removed)
		}
		f.mu.Unlock()
		return err
	}
	return nil
}

func (f *Feed) Totals() Totals {
	f.mu.Lock()
	defer f.mu.Unlock()

	var t Totals
	for _, item := range f.items {
		switch {
		case item.Amount.IsNegative():
			t.Spent = t.Spent.Add(item.Amount)
		case item.Amount.IsPositive():
			t.Income = t.Income.Add(item.Amount)
		}
	}
	t.Net = t.Income.Add(t.Spent)
	return t
}
