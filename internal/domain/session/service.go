package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"expensync/internal/domain/user"
	"expensync/internal/shared/auth"
)

// TokenIssuer signs and validates the access/refresh pair.
type TokenIssuer interface {
	IssueAccess(userID int64, email string) (string, time.Time, error)
	IssueRefresh(userID int64) (string, string, time.Time, error)
	ValidateRefresh(token string) (*auth.Claims, error)
}

// Service implements signup, login, token refresh and logout.
type Service struct {
	users  user.Repository
	tokens RefreshTokenRepository
	issuer TokenIssuer
	now    func() time.Time
}

func NewService(users user.Repository, tokens RefreshTokenRepository, issuer TokenIssuer) *Service {
	return &Service{users: users, tokens: tokens, issuer: issuer, now: time.Now}
}

// Signup registers a new password user.
func (s *Service) Signup(ctx context.Context, params SignupParams) (*user.User, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByEmail(ctx, params.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, user.ErrEmailTaken
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	return s.users.Create(ctx, user.CreateUserParams{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: hash,
	})
}

// Login checks credentials and issues an access/refresh pair.
func (s *Service) Login(ctx context.Context, email, password string) (*Tokens, error) {
	u, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if u == nil || u.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(u.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	access, accessExp, err := s.issuer.IssueAccess(u.ID, u.Email)
	if err != nil {
		return nil, err
	}

	refresh, jti, refreshExp, err := s.issuer.IssueRefresh(u.ID)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Create(ctx, jti, u.ID, refreshExp); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	zap.L().Info("user logged in", zap.Int64("user_id", u.ID))

	return &Tokens{
		AccessToken:     access,
		RefreshToken:    refresh,
		AccessExpiresAt: accessExp,
		User:            u,
	}, nil
}

// Refresh mints a new access token. The refresh token itself is not rotated.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	claims, err := s.issuer.ValidateRefresh(refreshToken)
	if err != nil {
		return "", time.Time{}, ErrInvalidRefreshToken
	}

	stored, err := s.tokens.Get(ctx, claims.ID)
	if err != nil {
		return "", time.Time{}, err
	}
	if stored == nil || stored.UserID != claims.UserID || !stored.Usable(s.now()) {
		return "", time.Time{}, ErrInvalidRefreshToken
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", time.Time{}, err
	}
	if u == nil {
		return "", time.Time{}, ErrInvalidRefreshToken
	}

	return s.issuer.IssueAccess(u.ID, u.Email)
}

// Logout revokes the refresh token. Unknown or already revoked tokens are
// not an error.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.issuer.ValidateRefresh(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil
		}
		return ErrInvalidRefreshToken
	}
	return s.tokens.Revoke(ctx, claims.ID)
}

// Me returns the authenticated user.
func (s *Service) Me(ctx context.Context, userID int64) (*user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

// PurgeExpired removes refresh tokens that can no longer be used.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	return s.tokens.PurgeExpired(ctx, s.now())
}
