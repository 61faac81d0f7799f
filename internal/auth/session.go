package auth

import (
	"context"
	"errors"
	"fmt"
)

var ErrRefreshRevoked = errors.New("refresh token revoked or unknown")

type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// SessionManager pairs short-lived access tokens with single-use refresh tokens.
type SessionManager struct {
	issuer *TokenIssuer
	store  RefreshTokenStore
}

func NewSessionManager(issuer *TokenIssuer, store RefreshTokenStore) *SessionManager {
	return &SessionManager{issuer: issuer, store: store}
}

func (m *SessionManager) Issuer() *TokenIssuer { return m.issuer }

func (m *SessionManager) Issue(ctx context.Context, userID, email string) (*Session, error) {
	access, err := m.issuer.GenerateAccessToken(userID, email)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, jti, err := m.issuer.GenerateRefreshToken(userID, email)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	if err := m.store.Store(ctx, jti, userID, m.issuer.RefreshTTL()); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	return &Session{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(m.issuer.AccessTTL().Seconds()),
	}, nil
}

// Refresh consumes refreshToken and issues a new session for the same user.
func (m *SessionManager) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	claims, err := m.issuer.ValidateToken(refreshToken, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	userID, ok, err := m.store.Consume(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("consume refresh token: %w", err)
	}
	if !ok || userID != claims.UserID {
		return nil, ErrRefreshRevoked
	}
	return m.Issue(ctx, claims.UserID, claims.Email)
}

func (m *SessionManager) Revoke(ctx context.Context, refreshToken string) error {
	claims, err := m.issuer.ValidateToken(refreshToken, TokenTypeRefresh)
	if err != nil {
		return err
	}
	return m.store.Revoke(ctx, claims.ID)
}
