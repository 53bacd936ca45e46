package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/botstudio/backend/internal/auth"
	"github.com/botstudio/backend/internal/config"
	"github.com/botstudio/backend/internal/handlers"
)

const (
	compressLevel = 5
)

type Middleware interface {
	Handle(h http.Handler) http.Handler
}

type Router struct {
	address string
	router  *chi.Mux
}

func NewRouter(conf *config.ServerConfig, h *handlers.HandlerSet, middlewares ...Middleware) *Router {

	r := chi.NewRouter()

	for _, m := range middlewares {
		r.Use(m.Handle)
	}
	r.Use(middleware.Compress(compressLevel))

	r.Get("/api/catalog/plans", h.HandleGetPlans)
	r.Get("/api/catalog/categories", h.HandleGetCategories)
	r.Post("/api/orders", h.HandleSubmitOrder)

	r.Post("/api/admin/login", h.HandleAdminLogin)

	authMiddleware := &auth.AuthenticateMiddleware{Secret: conf.Secret}

	r.Group(func(r chi.Router) {

		r.Use(authMiddleware.Handle)

		r.Get("/api/admin/orders", h.HandleAdminListOrders)
		r.Get("/api/admin/orders/feed", h.HandleOrdersFeed)
		r.Patch("/api/admin/orders/{id}/status", h.HandleAdvanceOrderStatus)
		r.Delete("/api/admin/orders/{id}", h.HandleDeleteOrder)

		r.Get("/api/admin/plans", h.HandleAdminListPlans)
		r.Post("/api/admin/plans", h.HandleCreatePlan)
		r.Put("/api/admin/plans/{id}", h.HandleUpdatePlan)
		r.Delete("/api/admin/plans/{id}", h.HandleDeletePlan)

		r.Get("/api/admin/categories", h.HandleAdminListCategories)
		r.Post("/api/admin/categories", h.HandleCreateCategory)
		r.Put("/api/admin/categories/{id}", h.HandleUpdateCategory)
		r.Delete("/api/admin/categories/{id}", h.HandleDeleteCategory)

		r.Get("/api/admin/toggles", h.HandleAdminListToggles)
		r.Post("/api/admin/toggles", h.HandleCreateToggle)
		r.Put("/api/admin/toggles/{id}", h.HandleUpdateToggle)
	})

	return &Router{router: r, address: conf.RunAddress}
}

func (r *Router) ListenAndServe() error {
	err := http.ListenAndServe(r.address, r.router)
	return err
}
