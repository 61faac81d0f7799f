package auth

import (
	"net/http"

	"github.com/saulo-duarte/goalie-lambda/internal/config"
)

type Handler struct {
	sessions *SessionManager
	cookies  CookieConfig
}

func NewHandler(sessions *SessionManager, cookies CookieConfig) *Handler {
	return &Handler{sessions: sessions, cookies: cookies}
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if c, err := r.Cookie(RefreshCookieName); err == nil && c.Value != "" {
		if err := h.sessions.Revoke(r.Context(), c.Value); err != nil {
			log.WithError(err).Warn("Failed to revoke refresh token on logout")
		}
	}

	h.cookies.ClearSession(w)
	config.JSON(w, http.StatusOK, map[string]string{
		"message": "logout successful",
	})
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	c, err := r.Cookie(RefreshCookieName)
	if err != nil || c.Value == "" {
		config.Error(w, http.StatusUnauthorized, "missing refresh token")
		return
	}

	session, err := h.sessions.Refresh(r.Context(), c.Value)
	if err != nil {
		log.WithError(err).Warn("Refresh token rejected")
		h.cookies.ClearSession(w)
		config.Error(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	h.cookies.SetSession(w, session.AccessToken, session.RefreshToken,
		h.sessions.Issuer().AccessTTL(), h.sessions.Issuer().RefreshTTL())
	config.JSON(w, http.StatusOK, map[string]interface{}{
		"message":    "token refreshed",
		"expires_in": session.ExpiresIn,
	})
}
