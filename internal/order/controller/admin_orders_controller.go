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
	"renovado/internal/httpx"
)

type AdminQueryUseCase interface {
	GetByID(ctx context.Context, id uint) (*domain.Order, error)
	AdminList(ctx context.Context, q dto.AdminListQuery) ([]domain.Order, int, error)
}

type AdminUpdateUseCase interface {
	AdminUpdate(ctx context.Context, id uint, upd dto.AdminOrderUpdate) error
}

// AdminController serves the authenticated /admin/orders endpoints.
type AdminController struct {
	query  AdminQueryUseCase
	update AdminUpdateUseCase
	logger *zap.Logger
}

func NewAdminController(query AdminQueryUseCase, update AdminUpdateUseCase, logger *zap.Logger) *AdminController {
	return &AdminController{
		query:  query,
		update: update,
		logger: logger,
	}
}

// HandleList returns a single order when an id parameter is present,
// otherwise a page of orders with the total matching count.
func (c *AdminController) HandleList(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	if rawID := r.URL.Query().Get("id"); rawID != "" {
		id, err := strconv.ParseUint(rawID, 10, 64)
		if err != nil {
			httpx.Error(w, logger, http.StatusBadRequest, "ID inválido")
			return
		}

		order, err := c.query.GetByID(r.Context(), uint(id))
		if err != nil {
			writeError(w, logger, err, "Erro ao buscar pedido")
			return
		}
		httpx.Success(w, logger, dto.FromOrder(*order))
		return
	}

	q := dto.AdminListQuery{
		Limite: queryInt(r, "limite"),
		Pagina: queryInt(r, "pagina"),
		Status: r.URL.Query().Get("status"),
		Busca:  r.URL.Query().Get("busca"),
	}

	orders, total, err := c.query.AdminList(r.Context(), q)
	if err != nil {
		writeError(w, logger, err, "Erro ao listar pedidos")
		return
	}

	if q.Limite <= 0 {
		q.Limite = 50
	}
	if q.Pagina <= 0 {
		q.Pagina = 1
	}

	httpx.Success(w, logger, dto.AdminListResponse{
		Pedidos: dto.FromOrders(orders),
		Total:   total,
		Pagina:  q.Pagina,
		Limite:  q.Limite,
	})
}

func (c *AdminController) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	rawID := r.URL.Query().Get("id")
	if rawID == "" {
		httpx.Error(w, logger, http.StatusBadRequest, "ID é obrigatório")
		return
	}
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		httpx.Error(w, logger, http.StatusBadRequest, "ID inválido")
		return
	}

	var upd dto.AdminOrderUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		httpx.Error(w, logger, http.StatusBadRequest, "Dados inválidos")
		return
	}

	if err := c.update.AdminUpdate(r.Context(), uint(id), upd); err != nil {
		writeError(w, logger, err, "Erro ao atualizar pedido")
		return
	}

	httpx.SuccessMessage(w, logger, map[string]uint64{"id": id}, "Pedido atualizado")
}

func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}
