package session

import (
	"context"
	"time"
)

// RefreshTokenRepository persists issued refresh tokens by jti.
type RefreshTokenRepository interface {
	Create(ctx context.Context, jti string, userID int64, expiresAt time.Time) error
	// Get returns nil, nil when the jti is unknown.
	Get(ctx context.Context, jti string) (*RefreshToken, error)
	Revoke(ctx context.Context, jti string) error
	// PurgeExpired deletes tokens that expired or were revoked before cutoff.
	PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
