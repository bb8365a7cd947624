package httpapi

import (
	"context"
	"net/http"
	"strings"

	"warung-site/admin-svc/internal/service"
	"warung-site/internal/domain"
)

// SessionCookie carries the admin token for browser clients.
const SessionCookie = "adminSession"

type contextKey string

const (
	sessionKey contextKey = "admin_session"
	tokenKey   contextKey = "admin_token"
)

// RequireSession rejects requests without a live admin session. The token is
// read from an "Authorization: Bearer" header first, then from the cookie.
func RequireSession(auth service.AuthServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := tokenFromRequest(r)
			if !ok {
				http.Error(w, "No admin session provided", http.StatusUnauthorized)
				return
			}

			session, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				respondError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, session)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the session stored by RequireSession.
func SessionFromContext(ctx context.Context) (domain.AdminSession, bool) {
	session, ok := ctx.Value(sessionKey).(domain.AdminSession)
	return session, ok
}

func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

func tokenFromRequest(r *http.Request) (string, bool) {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}
	return "", false
}
