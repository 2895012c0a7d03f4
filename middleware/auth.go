package middleware

import (
	"log/slog"
	"net/http"
	"strings"
)

type contextKey string

const userIDContextKey contextKey = "user_id"

// TokenParser validates a bearer token and returns the user id it was issued for.
type TokenParser interface {
	Parse(token string) (int, error)
}

// Authenticate accepts "Authorization: Bearer <token>" or, for websocket
// handshakes where browsers cannot set headers, a "token" query parameter.
func Authenticate(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := tokenFromRequest(r)
			if raw == "" {
				writeError(w, http.StatusUnauthorized, "missing or malformed authorization token")
				return
			}

			userID, err := tokens.Parse(raw)
			if err != nil {
				slog.DebugContext(r.Context(), "token rejected", slog.Any("error", err))
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return ""
		}
		return strings.TrimSpace(token)
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}
