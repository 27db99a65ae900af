package usecase

import (
	"context"

	"go.uber.org/zap"

	"renovado/internal/domain"
	"renovado/internal/dto"
	"renovado/internal/order/repository"
)

const defaultPageSize = 50

type OrderFinder interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	FindByNumero(ctx context.Context, numero string) (*domain.Order, error)
	ListByUsuarioID(ctx context.Context, usuarioID int64) ([]domain.Order, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Order, error)
	List(ctx context.Context, f repository.ListFilter) ([]domain.Order, error)
	Count(ctx context.Context, f repository.ListFilter) (int, error)
}

type OrderItemFinder interface {
	ListByPedidoID(ctx context.Context, pedidoID uint) ([]domain.OrderItem, error)
}

// QueryOrdersUseCase serves every read path. Orders always leave here with
// their line items attached, never bare headers.
type QueryOrdersUseCase struct {
	orderRepo OrderFinder
	itemRepo  OrderItemFinder
	logger    *zap.Logger
}

func NewQueryOrdersUseCase(orderRepo OrderFinder, itemRepo OrderItemFinder, logger *zap.Logger) *QueryOrdersUseCase {
	return &QueryOrdersUseCase{
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		logger:    logger,
	}
}

func (uc *QueryOrdersUseCase) GetByNumero(ctx context.Context, numero string) (*domain.Order, error) {
	order, err := uc.orderRepo.FindByNumero(ctx, numero)
	if err != nil {
		return nil, err
	}
	if err := uc.attachItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (uc *QueryOrdersUseCase) GetByID(ctx context.Context, id uint) (*domain.Order, error) {
	order, err := uc.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.attachItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// ListByCustomer resolves the caller's orders by registered account id when
// present, falling back to the e-mail snapshot otherwise. Newest first.
func (uc *QueryOrdersUseCase) ListByCustomer(ctx context.Context, usuarioID *int64, email string) ([]domain.Order, error) {
	var orders []domain.Order
	var err error

	if usuarioID != nil {
		orders, err = uc.orderRepo.ListByUsuarioID(ctx, *usuarioID)
	} else {
		orders, err = uc.orderRepo.ListByEmail(ctx, email)
	}
	if err != nil {
		return nil, err
	}

	if err := uc.attachItemsAll(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// AdminList pages over all orders with optional status and free-text
// filters, returning the page plus the total matching count.
func (uc *QueryOrdersUseCase) AdminList(ctx context.Context, q dto.AdminListQuery) ([]domain.Order, int, error) {
	if q.Limite <= 0 {
		q.Limite = defaultPageSize
	}
	if q.Pagina <= 0 {
		q.Pagina = 1
	}

	// A status filter using the legacy alias still matches pendente rows.
	status := q.Status
	if st, ok := domain.ParseStatus(status); ok {
		status = string(st)
	}

	filter := repository.ListFilter{
		Status: status,
		Busca:  q.Busca,
		Limit:  q.Limite,
		Offset: (q.Pagina - 1) * q.Limite,
	}

	orders, err := uc.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	if err := uc.attachItemsAll(ctx, orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (uc *QueryOrdersUseCase) attachItems(ctx context.Context, order *domain.Order) error {
	items, err := uc.itemRepo.ListByPedidoID(ctx, order.ID)
	if err != nil {
		return err
	}
	order.Itens = items
	return nil
}

func (uc *QueryOrdersUseCase) attachItemsAll(ctx context.Context, orders []domain.Order) error {
	for i := range orders {
		if err := uc.attachItems(ctx, &orders[i]); err != nil {
			return err
		}
	}
	return nil
}
