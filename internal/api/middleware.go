package api

import (
	"context"
	"net/http"
	"strings"

	"quotes-server/internal/auth"
	"quotes-server/internal/models"
)

type contextKey string

const userContextKey = contextKey("user")

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
}

// AuthMiddleware resolves the bearer token to a user account. Missing,
// malformed, expired and forged tokens all get the same 401; only a
// resolved-but-deactivated account is told apart, with a 400.
func (s *Server) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w)
			return
		}

		headerParts := strings.Split(authHeader, " ")
		if len(headerParts) != 2 || headerParts[0] != "Bearer" {
			unauthorized(w)
			return
		}

		claims, err := auth.VerifyToken(headerParts[1], s.config.JWT.Secret)
		if err != nil {
			unauthorized(w)
			return
		}

		user, err := s.store.GetUserByUsername(r.Context(), claims.Subject)
		if err != nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if user == nil {
			unauthorized(w)
			return
		}
		if !user.IsActive {
			http.Error(w, auth.ErrUserDisabled.Error(), http.StatusBadRequest)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetUserFromContext(ctx context.Context) *models.User {
	if user, ok := ctx.Value(userContextKey).(*models.User); ok {
		return user
	}
	return nil
}
