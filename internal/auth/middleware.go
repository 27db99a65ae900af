package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	authtoken "renovado/internal/auth/token"
	"renovado/internal/domain"
	"renovado/internal/httpx"
)

type AdminFinder interface {
	FindActiveAdminByID(ctx context.Context, id int64) (*domain.User, error)
}

// RequireAdmin gates the admin endpoints: it parses the bearer token,
// rejects expired ones and verifies the caller still resolves to an active
// admin account.
func RequireAdmin(finder AdminFinder, ttl time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				httpx.Error(w, logger, http.StatusUnauthorized, "Token não fornecido")
				return
			}
			token := strings.TrimPrefix(header, "Bearer ")

			userID, issuedAt, err := authtoken.ParseToken(token)
			if err != nil {
				httpx.Error(w, logger, http.StatusUnauthorized, "Token inválido")
				return
			}

			if time.Since(issuedAt) > ttl {
				httpx.Error(w, logger, http.StatusUnauthorized, "Token expirado")
				return
			}

			if _, err := finder.FindActiveAdminByID(r.Context(), userID); err != nil {
				httpx.Error(w, logger, http.StatusUnauthorized, "Usuário não autorizado")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
