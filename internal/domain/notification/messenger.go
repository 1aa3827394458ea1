package notification

import (
	"context"

	"go.uber.org/zap"
)

// Messenger delivers a push notification to device tokens.
// Implemented by the Firebase client in the infrastructure layer.
type Messenger interface {
	SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) error
}

// LogMessenger writes notifications to the log instead of delivering them.
type LogMessenger struct{}

func (LogMessenger) SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) error {
	zap.L().Info("push notification (not delivered)",
		zap.Int("tokens", len(tokens)),
		zap.String("title", title),
		zap.String("body", body),
		zap.Any("data", data),
	)
	return nil
}
