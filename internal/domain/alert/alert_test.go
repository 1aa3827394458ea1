package alert

import (
	"context"
	"testing"
	"time"

	"expensync/internal/domain/categorygoal"
	"expensync/internal/domain/event"
	"expensync/internal/domain/transaction"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type goalMap map[string]decimal.Decimal

func (g goalMap) Get(ctx context.Context, userID int64, category string) (*categorygoal.Goal, error) {
	v, ok := g[category]
	if !ok {
		return nil, nil
	}
	return &categorygoal.Goal{Category: category, Goal: v}, nil
}

// ledger holds stored transactions in insertion order and answers
// SpentThrough the way the database does.
type ledger struct {
	txs     []ledgerTx
	gotFrom time.Time
}

type ledgerTx struct {
	id       string
	category string
	amount   decimal.Decimal
}

func (l *ledger) add(id, category, amount string) {
	l.txs = append(l.txs, ledgerTx{id: id, category: category, amount: decimal.RequireFromString(amount)})
}

func (l *ledger) SpentThrough(ctx context.Context, userID int64, id string, from, to time.Time) (*transaction.RunningSpend, error) {
	l.gotFrom = from
	idx := -1
	for i, tx := range l.txs {
		if tx.id == id {
			idx = i
		}
	}
	if idx < 0 {
		return nil, nil
	}
	target := l.txs[idx]
	spent := decimal.Zero
	for _, tx := range l.txs[:idx+1] {
		if tx.category == target.category && tx.amount.IsNegative() {
			spent = spent.Add(tx.amount.Abs())
		}
	}
	return &transaction.RunningSpend{Category: target.category, Amount: target.amount, Spent: spent}, nil
}

type countingNotifier struct {
	bodies []string
}

func (c *countingNotifier) NotifyUser(ctx context.Context, userID int64, title, body, category string, data map[string]string) error {
	c.bodies = append(c.bodies, body)
	return nil
}

func TestHandleTransactionCreated(t *testing.T) {
	date := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		category string
		prior    string
		amount   string
		wantSent bool
	}{
		{name: "crosses goal", category: "Food", prior: "-270", amount: "-50", wantSent: true},
		{name: "lands exactly on goal", category: "Food", prior: "-250", amount: "-50"},
		{name: "starts exactly at goal", category: "Food", prior: "-300", amount: "-20", wantSent: true},
		{name: "already over goal", category: "Food", prior: "-390", amount: "-10"},
		{name: "under goal", category: "Food", prior: "-90", amount: "-10"},
		{name: "income ignored", category: "Food", prior: "-290", amount: "50"},
		{name: "no goal", category: "Fun", prior: "-290", amount: "-50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &ledger{}
			l.add("tx-0", tt.category, tt.prior)
			l.add("tx-1", tt.category, tt.amount)
			notifier := &countingNotifier{}
			svc := NewService(goalMap{"Food": decimal.NewFromInt(300)}, l, notifier, nil)

			e := event.New(event.TransactionCreated, 1, "tx-1", tt.category, decimal.RequireFromString(tt.amount), date)
			sent, err := svc.HandleTransactionCreated(context.Background(), e)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSent, sent)
			assert.Equal(t, tt.wantSent, len(notifier.bodies) == 1)
		})
	}
}

func TestHandleTransactionCreated_LateEvents(t *testing.T) {
	date := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	l := &ledger{}
	l.add("tx-0", "Food", "-90")
	l.add("tx-1", "Food", "-20")
	l.add("tx-2", "Food", "-20")

	notifier := &countingNotifier{}
	svc := NewService(goalMap{"Food": decimal.NewFromInt(100)}, l, notifier, nil)

	// Both expenses are stored before either event is handled.
	for _, id := range []string{"tx-1", "tx-2"} {
		e := event.New(event.TransactionCreated, 1, id, "Food", decimal.NewFromInt(-20), date)
		_, err := svc.HandleTransactionCreated(context.Background(), e)
		require.NoError(t, err)
	}

	require.Len(t, notifier.bodies, 1)
	assert.Equal(t, "You have spent 110.00 of your 100.00 goal for Food this month", notifier.bodies[0])
}

func TestHandleTransactionCreated_DeletedBeforeHandling(t *testing.T) {
	l := &ledger{}
	l.add("tx-0", "Food", "-290")

	notifier := &countingNotifier{}
	svc := NewService(goalMap{"Food": decimal.NewFromInt(300)}, l, notifier, nil)

	e := event.New(event.TransactionCreated, 1, "tx-gone", "Food", decimal.NewFromInt(-50), time.Now())
	sent, err := svc.HandleTransactionCreated(context.Background(), e)
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Empty(t, notifier.bodies)
}

func TestHandleTransactionCreated_RendersMessage(t *testing.T) {
	l := &ledger{}
	l.add("tx-0", "Food", "-280")
	l.add("tx-1", "Food", "-30")
	notifier := &countingNotifier{}
	svc := NewService(goalMap{"Food": decimal.NewFromInt(300)}, l, notifier, nil)

	e := event.New(event.TransactionCreated, 1, "tx-1", "Food", decimal.NewFromInt(-30), time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC))
	_, err := svc.HandleTransactionCreated(context.Background(), e)
	require.NoError(t, err)

	require.Len(t, notifier.bodies, 1)
	assert.Equal(t, "You have spent 310.00 of your 300.00 goal for Food this month", notifier.bodies[0])
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), l.gotFrom)
}

func TestHandle_IgnoresDeleted(t *testing.T) {
	notifier := &countingNotifier{}
	svc := NewService(goalMap{}, &ledger{}, notifier, nil)

	e := event.New(event.TransactionDeleted, 1, "tx-1", "Food", decimal.NewFromInt(-30), time.Now())
	require.NoError(t, svc.Handle(context.Background(), e))
	assert.Empty(t, notifier.bodies)
}
