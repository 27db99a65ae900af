package auth

import (
	"database/sql"
	"net/http"

	"go.uber.org/zap"

	"renovado/internal/auth/controller"
	"renovado/internal/auth/repository"
	"renovado/internal/config"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) (*controller.Controller, func(http.Handler) http.Handler) {
	users := repository.NewMySQLUserRepository(db)
	login := controller.NewController(users, logger)
	middleware := RequireAdmin(users, cfg.Auth.TokenTTL, logger)
	return login, middleware
}
