package event

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Type string

const (
	TransactionCreated Type = "transaction.created"
	TransactionDeleted Type = "transaction.deleted"
)

// Event describes a change to a user's transactions.
type Event struct {
	ID            string          `json:"id"`
	Type          Type            `json:"type"`
	UserID        int64           `json:"userId"`
	TransactionID string          `json:"transactionId"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	OccurredAt    time.Time       `json:"occurredAt"`
}

func New(t Type, userID int64, transactionID, category string, amount decimal.Decimal, date time.Time) Event {
	return Event{
		ID:            uuid.NewString(),
		Type:          t,
		UserID:        userID,
		TransactionID: transactionID,
		Category:      category,
		Amount:        amount,
		Date:          date,
		OccurredAt:    time.Now().UTC(),
	}
}

// Publisher delivers events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// NopPublisher discards events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, e Event) error {
	zap.L().Debug("event discarded", zap.String("type", string(e.Type)), zap.String("transaction_id", e.TransactionID))
	return nil
}
