package notification

import (
	"errors"
	"strings"
	"time"

	"expensync/internal/domain/validation"
)

// Notification categories; also used as the client-side route.
const (
	CategoryReminders = "reminders"
	CategoryGoals     = "goals"
)

var validPlatforms = map[string]struct{}{
	"ios":     {},
	"android": {},
	"web":     {},
}

var (
	ErrDeviceTokenNotFound  = errors.New("device token not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidPlatform      = validation.New("platform must be 'ios', 'android' or 'web'")
	ErrInvalidToken         = validation.New("device token is required")
)

// DeviceToken is a registered push token.
type DeviceToken struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"-"`
	Token     string    `json:"token"`
	Platform  string    `json:"platform"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	LastUsed  time.Time `json:"lastUsed"`
}

// Notification is a stored record of a push sent to the user.
type Notification struct {
	ID        string            `json:"id"`
	UserID    int64             `json:"-"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Category  string            `json:"category"`
	Data      map[string]string `json:"data"`
	OpenedAt  *time.Time        `json:"openedAt"`
	CreatedAt time.Time         `json:"createdAt"`
}

type RegisterDeviceParams struct {
	UserID   int64
	Token    string
	Platform string
}

func (p *RegisterDeviceParams) Normalize() {
	p.Token = strings.TrimSpace(p.Token)
	p.Platform = strings.ToLower(strings.TrimSpace(p.Platform))
}

func (p RegisterDeviceParams) Validate() error {
	if p.UserID <= 0 {
		return validation.New("valid user ID is required")
	}
	if p.Token == "" {
		return ErrInvalidToken
	}
	if !IsValidPlatform(p.Platform) {
		return ErrInvalidPlatform
	}
	return nil
}

type CreateNotificationParams struct {
	UserID   int64
	Title    string
	Body     string
	Category string
	Data     map[string]string
}

func IsValidPlatform(p string) bool {
	_, ok := validPlatforms[p]
	return ok
}
