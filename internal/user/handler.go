package user

import (
	"errors"
	"net/http"
	"strings"

	"github.com/saulo-duarte/goalie-lambda/internal/auth"
	"github.com/saulo-duarte/goalie-lambda/internal/config"
)

type Handler struct {
	service     UserService
	cookies     auth.CookieConfig
	issuer      *auth.TokenIssuer
	frontendURL string
}

func NewHandler(service UserService, cookies auth.CookieConfig, issuer *auth.TokenIssuer, frontendURL string) *Handler {
	return &Handler{
		service:     service,
		cookies:     cookies,
		issuer:      issuer,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	url, state, err := h.service.BeginLogin(r.Context())
	if err != nil {
		if errors.Is(err, ErrGoogleNotConfigured) {
			config.Error(w, http.StatusServiceUnavailable, "google login is not configured")
			return
		}
		config.Error(w, http.StatusInternalServerError, "could not start login")
		return
	}

	h.cookies.SetState(w, state)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

func (h *Handler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if e := r.URL.Query().Get("error"); e != "" {
		log.WithField("oauth_error", e).Warn("Google consent was not granted")
		config.Error(w, http.StatusUnauthorized, "google login was cancelled")
		return
	}

	state := r.URL.Query().Get("state")
	c, err := r.Cookie(auth.StateCookieName)
	h.cookies.ClearState(w)
	if err != nil || state == "" || c.Value != state {
		log.Warn("OAuth state mismatch")
		config.Error(w, http.StatusBadRequest, "invalid oauth state")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		config.Error(w, http.StatusBadRequest, "missing authorization code")
		return
	}

	_, session, err := h.service.CompleteLogin(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailNotVerified), errors.Is(err, ErrIncompleteProfile):
			config.Error(w, http.StatusForbidden, err.Error())
		case errors.Is(err, ErrGoogleNotConfigured):
			config.Error(w, http.StatusServiceUnavailable, "google login is not configured")
		default:
			config.Error(w, http.StatusUnauthorized, "could not complete google login")
		}
		return
	}

	h.cookies.SetSession(w, session.AccessToken, session.RefreshToken,
		h.issuer.AccessTTL(), h.issuer.RefreshTTL())
	http.Redirect(w, r, h.frontendURL+"/dashboard", http.StatusTemporaryRedirect)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "Could not validate credentials.")
		return
	}

	u, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			config.Error(w, http.StatusNotFound, "user not found")
			return
		}
		config.Error(w, http.StatusInternalServerError, "could not load user")
		return
	}

	config.JSON(w, http.StatusOK, u.ToResponse())
}
