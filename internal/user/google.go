package user

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

var ErrGoogleNotConfigured = errors.New("google oauth client is not configured")

type GoogleProfile struct {
	Subject       string
	Email         string
	Name          string
	EmailVerified bool
	RefreshToken  string
}

type GoogleProvider interface {
	AuthCodeURL(state string) (string, error)
	Exchange(ctx context.Context, code string) (*GoogleProfile, error)
}

type googleProvider struct {
	oauthConfig *oauth2.Config
}

func NewGoogleProvider(clientID, clientSecret, redirectURL string) GoogleProvider {
	return &googleProvider{
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", oauth2api.UserinfoEmailScope, oauth2api.UserinfoProfileScope},
			Endpoint:     google.Endpoint,
		},
	}
}

func (p *googleProvider) configured() bool {
	return p.oauthConfig.ClientID != "" && p.oauthConfig.ClientSecret != ""
}

func (p *googleProvider) AuthCodeURL(state string) (string, error) {
	if !p.configured() {
		return "", ErrGoogleNotConfigured
	}
	return p.oauthConfig.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	), nil
}

func (p *googleProvider) Exchange(ctx context.Context, code string) (*GoogleProfile, error) {
	if !p.configured() {
		return nil, ErrGoogleNotConfigured
	}

	token, err := p.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code for token: %w", err)
	}

	srv, err := oauth2api.NewService(ctx, option.WithTokenSource(p.oauthConfig.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("create userinfo client: %w", err)
	}
	info, err := srv.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get user info: %w", err)
	}

	profile := &GoogleProfile{
		Subject:      info.Id,
		Email:        info.Email,
		Name:         info.Name,
		RefreshToken: token.RefreshToken,
	}
	if info.VerifiedEmail != nil {
		profile.EmailVerified = *info.VerifiedEmail
	}
	return profile, nil
}
