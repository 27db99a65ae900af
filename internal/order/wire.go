package order

import (
	"database/sql"

	"go.uber.org/zap"

	"renovado/internal/config"
	"renovado/internal/order/controller"
	"renovado/internal/order/repository"
	"renovado/internal/order/service"
	"renovado/internal/order/usecase"
)

// NewModule wires the order subsystem: repositories over the shared pool,
// the number generator and checkout writer, and the three use cases behind
// the customer and admin controllers.
func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) (*controller.Controller, *controller.AdminController) {
	orderRepo := repository.NewMySQLOrderRepository(db)
	itemRepo := repository.NewMySQLOrderItemRepository(db)

	numbers := service.NewNumberGenerator(orderRepo, logger, cfg.Order.NumberAttempts)
	checkout := service.NewCheckoutService(
		service.NewDBTransactionManager(db),
		orderRepo,
		itemRepo,
		numbers,
		logger,
		cfg.Order.TxTimeout,
		cfg.Order.CreateRetryAttempts,
	)

	createUC := usecase.NewCreateOrderUseCase(checkout, logger)
	queryUC := usecase.NewQueryOrdersUseCase(orderRepo, itemRepo, logger)
	updateUC := usecase.NewUpdateStatusUseCase(orderRepo, logger)

	customer := controller.NewController(createUC, queryUC, updateUC, logger)
	admin := controller.NewAdminController(queryUC, updateUC, logger)
	return customer, admin
}
