package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

var ErrNoUserInContext = errors.New("user id not found in context")

func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

func GetUserIDFromContext(ctx context.Context) (int, error) {
	userID, ok := ctx.Value(userIDContextKey).(int)
	if !ok || userID <= 0 {
		return 0, ErrNoUserInContext
	}
	return userID, nil
}

// writeError mirrors the handlers' {"error": ...} envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
