package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/stockroom/stockroom/internal/auth"
	"github.com/stockroom/stockroom/internal/catalog/categories"
	"github.com/stockroom/stockroom/internal/catalog/products"
	"github.com/stockroom/stockroom/internal/catalog/suppliers"
	"github.com/stockroom/stockroom/internal/orders"
	"github.com/stockroom/stockroom/internal/reports"
	"github.com/stockroom/stockroom/internal/shared"
	"github.com/stockroom/stockroom/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	Auth              *auth.Middleware
	AuthHandler       *auth.Handler
	CategoriesHandler *categories.Handler
	SuppliersHandler  *suppliers.Handler
	ProductsHandler   *products.Handler
	OrdersHandler     *orders.Handler
	ReportsHandler    *reports.Handler
	JobsHandler       *jobs.Handler
}

// NewRouter constructs the chi.Router serving the JSON API. Everything under
// /api except the auth endpoints requires a bearer token.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", params.AuthHandler.MountRoutes)

		r.Group(func(r chi.Router) {
			r.Use(params.Auth.Authenticate)
			r.Route("/categories", params.CategoriesHandler.MountRoutes)
			r.Route("/suppliers", params.SuppliersHandler.MountRoutes)
			r.Route("/products", params.ProductsHandler.MountRoutes)
			r.Route("/orders", params.OrdersHandler.MountRoutes)
			r.Route("/dashboard", params.ReportsHandler.MountRoutes)
			if params.JobsHandler != nil {
				r.Route("/jobs", func(r chi.Router) {
					r.Use(params.Auth.RequireRole(shared.RoleAdmin))
					params.JobsHandler.MountRoutes(r)
				})
			}
		})
	})

	return r
}
