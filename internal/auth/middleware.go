package auth

import (
	"net/http"
	"strings"

	"github.com/saulo-duarte/goalie-lambda/internal/config"
)

// AuthMiddleware accepts the session cookie or an Authorization bearer token.
func AuthMiddleware(issuer *TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := config.WithContext(r.Context())

			tokenStr := tokenFromRequest(r)
			if tokenStr == "" {
				log.Debug("Request without session token")
				config.Error(w, http.StatusUnauthorized, "Could not validate credentials.")
				return
			}

			claims, err := issuer.ValidateToken(tokenStr, TokenTypeAccess)
			if err != nil {
				log.WithError(err).Warn("Rejected session token")
				config.Error(w, http.StatusUnauthorized, "Invalid or expired token.")
				return
			}

			ctx := WithClaims(r.Context(), claims)
			ctx = config.WithUserID(ctx, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(AccessCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
