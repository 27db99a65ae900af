package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	authtoken "renovado/internal/auth/token"
	"renovado/internal/domain"
	"renovado/internal/dto"
	"renovado/internal/httpx"
)

type AdminUserFinder interface {
	FindAdminByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Controller serves POST /admin/login: bcrypt check against the usuarios
// table and an opaque bearer token on success.
type Controller struct {
	users  AdminUserFinder
	logger *zap.Logger
}

func NewController(users AdminUserFinder, logger *zap.Logger) *Controller {
	return &Controller{
		users:  users,
		logger: logger,
	}
}

func (c *Controller) HandleLogin(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, logger, http.StatusBadRequest, "Dados inválidos")
		return
	}

	if req.Email == "" {
		httpx.Error(w, logger, http.StatusBadRequest, "Email é obrigatório")
		return
	}
	if req.Senha == "" {
		httpx.Error(w, logger, http.StatusBadRequest, "Senha é obrigatória")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		httpx.Error(w, logger, http.StatusBadRequest, "Email inválido")
		return
	}

	user, err := c.users.FindAdminByEmail(r.Context(), req.Email)
	if err != nil {
		// Same response for unknown user and wrong password.
		httpx.Error(w, logger, http.StatusUnauthorized, "Email ou senha inválidos")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.SenhaHash), []byte(req.Senha)); err != nil {
		httpx.Error(w, logger, http.StatusUnauthorized, "Email ou senha inválidos")
		return
	}

	token := authtoken.GenerateToken(user.ID, time.Now())

	logger.Info("admin logged in", zap.Int64("userId", user.ID))

	httpx.SuccessMessage(w, logger, dto.LoginResponse{
		Token: token,
		Usuario: dto.UsuarioAdmin{
			ID:    user.ID,
			Nome:  user.Nome,
			Email: user.Email,
			Tipo:  user.Tipo,
		},
	}, "Login realizado com sucesso")
}
