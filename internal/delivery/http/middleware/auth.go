package middleware

import (
	"net/http"

	"adsbuilder/internal/application/auth"
	"adsbuilder/internal/delivery/http/handler"
	"adsbuilder/internal/domain/user"
)

// Auth middleware validates the authorization token
func Auth(authService auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := handler.ExtractToken(r)
			if token == "" {
				handler.SendError(w, "Authorization required", http.StatusUnauthorized)
				return
			}

			u, err := authService.ValidateToken(r.Context(), token)
			if err != nil {
				handler.SendError(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(handler.WithUser(r.Context(), u)))
		})
	}
}

// RequireRole middleware checks if user has required role
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := handler.GetUserFromContext(r.Context())
			if u == nil {
				handler.SendError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			for _, role := range roles {
				if u.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			handler.SendError(w, "Insufficient permissions", http.StatusForbidden)
		})
	}
}
