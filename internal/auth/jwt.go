package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	issuer = "goalie"
)

var (
	ErrMissingSecret = errors.New("JWT_SECRET must be set")
	ErrInvalidToken  = errors.New("invalid token")
)

type Claims struct {
	UserID    string `json:"uid"`
	Email     string `json:"email"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) (*TokenIssuer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrMissingSecret
	}
	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

func (i *TokenIssuer) AccessTTL() time.Duration  { return i.accessTTL }
func (i *TokenIssuer) RefreshTTL() time.Duration { return i.refreshTTL }

func (i *TokenIssuer) GenerateAccessToken(userID, email string) (string, error) {
	token, _, err := i.sign(userID, email, TokenTypeAccess, "", i.accessTTL)
	return token, err
}

// GenerateRefreshToken returns the signed token and its jti.
func (i *TokenIssuer) GenerateRefreshToken(userID, email string) (string, string, error) {
	return i.sign(userID, email, TokenTypeRefresh, uuid.NewString(), i.refreshTTL)
}

func (i *TokenIssuer) sign(userID, email, tokenType, jti string, ttl time.Duration) (string, string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID:    userID,
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

// ValidateToken parses tokenStr and checks it is of the expected type.
// Expired tokens are reported with jwt.ErrTokenExpired in the chain.
func (i *TokenIssuer) ValidateToken(tokenStr, tokenType string) (*Claims, error) {
	var claims Claims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	_, err := parser.ParseWithClaims(tokenStr, &claims, func(_ *jwt.Token) (interface{}, error) {
		return i.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims.TokenType != tokenType || claims.UserID == "" || claims.Subject != claims.UserID {
		return nil, ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
