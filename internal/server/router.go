package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authcontroller "renovado/internal/auth/controller"
	"renovado/internal/httpx"
	ordercontroller "renovado/internal/order/controller"
	statscontroller "renovado/internal/stats/controller"
)

// NewRouter mounts the order subsystem. CORS runs before routing so every
// path answers pre-flight OPTIONS, including unauthenticated ones.
func NewRouter(
	orders *ordercontroller.Controller,
	adminOrders *ordercontroller.AdminController,
	stats *statscontroller.Controller,
	login *authcontroller.Controller,
	requireAdmin func(http.Handler) http.Handler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(httpx.CORS)

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", orders.HandleGet)
		r.Post("/", orders.HandleCreate)
		r.Put("/", orders.HandleUpdateStatus)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", login.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/orders", adminOrders.HandleList)
			r.Put("/orders", adminOrders.HandleUpdate)
			r.Get("/stats", stats.HandleGetStats)
		})
	})

	return r
}
