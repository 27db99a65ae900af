package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"renovado/internal/domain"
	"renovado/internal/dto"
	apperrors "renovado/internal/errors"
	"renovado/internal/httpx"
)

type CreateOrderUseCase interface {
	Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
}

type QueryOrdersUseCase interface {
	GetByNumero(ctx context.Context, numero string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, usuarioID *int64, email string) ([]domain.Order, error)
}

type UpdateStatusUseCase interface {
	UpdateByNumero(ctx context.Context, numero, status string, codigoRastreio *string) (*dto.UpdateStatusResponse, error)
}

// Controller serves the customer-facing /orders endpoints.
type Controller struct {
	create CreateOrderUseCase
	query  QueryOrdersUseCase
	update UpdateStatusUseCase
	logger *zap.Logger
}

func NewController(create CreateOrderUseCase, query QueryOrdersUseCase, update UpdateStatusUseCase, logger *zap.Logger) *Controller {
	return &Controller{
		create: create,
		query:  query,
		update: update,
		logger: logger,
	}
}

// HandleGet dispatches on the query parameter: usuario_id wins over email,
// which wins over numero.
func (c *Controller) HandleGet(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	if rawID := r.URL.Query().Get("usuario_id"); rawID != "" {
		usuarioID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			httpx.Error(w, logger, http.StatusBadRequest, "Parâmetro usuario_id inválido")
			return
		}
		c.listByCustomer(w, r, logger, &usuarioID, "")
		return
	}

	if email := r.URL.Query().Get("email"); email != "" {
		c.listByCustomer(w, r, logger, nil, email)
		return
	}

	if numero := r.URL.Query().Get("numero"); numero != "" {
		order, err := c.query.GetByNumero(r.Context(), numero)
		if err != nil {
			writeError(w, logger, err, "Erro ao buscar pedido")
			return
		}
		httpx.Success(w, logger, dto.FromOrder(*order))
		return
	}

	httpx.Error(w, logger, http.StatusBadRequest, "Parâmetro email ou numero é obrigatório")
}

func (c *Controller) listByCustomer(w http.ResponseWriter, r *http.Request, logger *zap.Logger, usuarioID *int64, email string) {
	orders, err := c.query.ListByCustomer(r.Context(), usuarioID, email)
	if err != nil {
		writeError(w, logger, err, "Erro ao buscar pedidos")
		return
	}
	httpx.Success(w, logger, dto.FromOrders(orders))
}

func (c *Controller) HandleCreate(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, logger, http.StatusBadRequest, "Dados inválidos")
		return
	}

	resp, err := c.create.Create(r.Context(), req)
	if err != nil {
		writeError(w, logger, err, "Erro ao criar pedido")
		return
	}

	httpx.SuccessMessage(w, logger, resp, "Pedido criado com sucesso")
}

// HandleUpdateStatus accepts the order number either as a query parameter
// or inside the body, the way older frontends send it.
func (c *Controller) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	var req dto.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, logger, http.StatusBadRequest, "Dados inválidos")
		return
	}

	numero := r.URL.Query().Get("numero")
	if numero == "" {
		numero = req.Numero
	}

	resp, err := c.update.UpdateByNumero(r.Context(), numero, req.Status, req.CodigoRastreio)
	if err != nil {
		writeError(w, logger, err, "Erro ao atualizar pedido")
		return
	}

	httpx.SuccessMessage(w, logger, resp, "Pedido atualizado com sucesso")
}

func (c *Controller) requestLogger() *zap.Logger {
	return c.logger.With(zap.String("traceId", uuid.New().String()))
}

// writeError maps the error taxonomy onto the HTTP surface. Validation and
// not-found outcomes are expected and not logged as exceptional; everything
// else is a 500 with enough context to investigate.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error, fallback string) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		httpx.Error(w, logger, http.StatusBadRequest, ve.Message)
		return
	}
	if _, ok := apperrors.IsNotFoundError(err); ok {
		httpx.Error(w, logger, http.StatusNotFound, "Pedido não encontrado")
		return
	}
	if _, ok := apperrors.IsConflictError(err); ok {
		// Exhausted numero retries; rare enough to deserve a look.
		logger.Error("order number conflict unresolved", zap.Error(err))
		httpx.Error(w, logger, http.StatusInternalServerError, fallback)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	httpx.Error(w, logger, http.StatusInternalServerError, fallback)
}
