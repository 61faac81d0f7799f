package user

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/saulo-duarte/goalie-lambda/internal/auth"
	"github.com/saulo-duarte/goalie-lambda/internal/config"
)

var (
	ErrEmailNotVerified  = errors.New("google account email is not verified")
	ErrIncompleteProfile = errors.New("google profile is missing email or subject")
)

type UserService interface {
	// BeginLogin returns the consent URL and the state value to pin in a cookie.
	BeginLogin(ctx context.Context) (string, string, error)
	CompleteLogin(ctx context.Context, code string) (*User, *auth.Session, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}

type userService struct {
	repo     UserRepository
	google   GoogleProvider
	sessions *auth.SessionManager
	cipher   *config.Cipher
}

func NewService(repo UserRepository, google GoogleProvider, sessions *auth.SessionManager, cipher *config.Cipher) UserService {
	return &userService{
		repo:     repo,
		google:   google,
		sessions: sessions,
		cipher:   cipher,
	}
}

func newState() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (s *userService) BeginLogin(ctx context.Context) (string, string, error) {
	state, err := newState()
	if err != nil {
		return "", "", fmt.Errorf("generate oauth state: %w", err)
	}
	url, err := s.google.AuthCodeURL(state)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to build Google consent URL")
		return "", "", err
	}
	return url, state, nil
}

func (s *userService) CompleteLogin(ctx context.Context, code string) (*User, *auth.Session, error) {
	log := config.WithContext(ctx)

	profile, err := s.google.Exchange(ctx, code)
	if err != nil {
		log.WithError(err).Warn("Google code exchange failed")
		return nil, nil, err
	}
	if strings.TrimSpace(profile.Email) == "" || profile.Subject == "" {
		return nil, nil, ErrIncompleteProfile
	}
	if !profile.EmailVerified {
		log.WithField("email", profile.Email).Warn("Rejected login with unverified email")
		return nil, nil, ErrEmailNotVerified
	}

	candidate := &User{
		Email:    profile.Email,
		Name:     profile.Name,
		GoogleID: profile.Subject,
	}
	if profile.RefreshToken != "" {
		sealed, err := s.cipher.Encrypt(profile.RefreshToken)
		if err != nil {
			log.WithError(err).Error("Failed to encrypt Google refresh token")
			return nil, nil, err
		}
		candidate.EncryptedGoogleRefreshToken = sealed
	}

	u, err := s.repo.Upsert(ctx, candidate)
	if err != nil {
		log.WithError(err).Error("Failed to persist user")
		return nil, nil, err
	}

	session, err := s.sessions.Issue(ctx, u.ID.String(), u.Email)
	if err != nil {
		log.WithError(err).WithField("user_id", u.ID).Error("Failed to issue session")
		return nil, nil, err
	}

	log.WithField("user_id", u.ID).Info("User signed in with Google")
	return u, session, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		config.WithContext(ctx).WithError(err).WithField("user_id", id).Warn("User lookup failed")
		return nil, err
	}
	return u, nil
}
