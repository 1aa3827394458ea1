package session

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"expensync/internal/domain/user"
	"expensync/internal/domain/validation"
	"expensync/internal/shared/auth"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// RefreshToken is the server-side record of an issued refresh token.
type RefreshToken struct {
	JTI       string
	UserID    int64
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// Usable reports whether the token can still mint access tokens at now.
func (t *RefreshToken) Usable(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}

// Tokens is the result of a successful login.
type Tokens struct {
	AccessToken     string     `json:"accessToken"`
	RefreshToken    string     `json:"refreshToken"`
	AccessExpiresAt time.Time  `json:"accessExpiresAt"`
	User            *user.User `json:"user"`
}

type SignupParams struct {
	Name     string
	Email    string
	Password string
}

// Normalize trims the name and lower-cases the email.
func (p *SignupParams) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = NormalizeEmail(p.Email)
}

func (p SignupParams) Validate() error {
	if p.Name == "" {
		return validation.New("name is required")
	}
	if len(p.Name) > 128 {
		return validation.New("name must be 128 characters or less")
	}
	if p.Email == "" {
		return validation.New("email is required")
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return validation.New("email is invalid")
	}
	if len(p.Password) < auth.MinPasswordLength {
		return validation.New("password must be at least 6 characters")
	}
	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
