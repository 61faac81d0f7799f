package auth

import (
	"net/http"
	"time"
)

const (
	AccessCookieName  = "jwt_token"
	RefreshCookieName = "refresh_token"
	StateCookieName   = "oauth_state"
)

type CookieConfig struct {
	Domain string
	Secure bool
}

func (c CookieConfig) sameSite() http.SameSite {
	// SameSite=None is rejected by browsers on insecure cookies.
	if c.Secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

func (c CookieConfig) cookie(name, value, path string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Domain:   c.Domain,
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.sameSite(),
	}
}

func (c CookieConfig) SetSession(w http.ResponseWriter, access, refresh string, accessTTL, refreshTTL time.Duration) {
	http.SetCookie(w, c.cookie(AccessCookieName, access, "/", accessTTL))
	http.SetCookie(w, c.cookie(RefreshCookieName, refresh, "/auth", refreshTTL))
}

func (c CookieConfig) ClearSession(w http.ResponseWriter) {
	for _, ck := range []*http.Cookie{
		c.cookie(AccessCookieName, "", "/", 0),
		c.cookie(RefreshCookieName, "", "/auth", 0),
	} {
		ck.MaxAge = -1
		http.SetCookie(w, ck)
	}
}

func (c CookieConfig) SetState(w http.ResponseWriter, state string) {
	http.SetCookie(w, c.cookie(StateCookieName, state, "/auth", 10*time.Minute))
}

func (c CookieConfig) ClearState(w http.ResponseWriter) {
	ck := c.cookie(StateCookieName, "", "/auth", 0)
	ck.MaxAge = -1
	http.SetCookie(w, ck)
}
