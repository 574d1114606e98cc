package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abaleemmo/food-festival-express-checkout/api/controllers"
	"github.com/abaleemmo/food-festival-express-checkout/api/middleware"
	"github.com/abaleemmo/food-festival-express-checkout/internal/catalog"
	"github.com/abaleemmo/food-festival-express-checkout/internal/checkout"
	"github.com/abaleemmo/food-festival-express-checkout/internal/kiosksession"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/config"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/logger"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/metrics"
	pkgredis "github.com/abaleemmo/food-festival-express-checkout/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Registry *prometheus.Registry

	HTTPMetrics *metrics.HTTPMetrics

	DB    controllers.Pinger
	Redis controllers.Pinger

	Sessions         *kiosksession.Manager
	Catalog          catalog.Service
	Checkout         *checkout.Service
	Transactions     controllers.TransactionReader
	IdempotencyStore pkgredis.IdempotencyStore
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, deps.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": deps.DB,
			"redis":    deps.Redis,
		}))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/sessions", controllers.SessionStart(deps.Sessions, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.KioskSession(deps.Sessions, logg))

			r.Route("/sessions/me", func(r chi.Router) {
				r.Get("/", controllers.SessionShow(logg))
				r.Post("/line", controllers.SessionChooseLine(logg))
				r.Post("/restrictions/toggle", controllers.RestrictionToggle(logg))
			})

			r.Route("/menu", func(r chi.Router) {
				r.Get("/", controllers.MenuShow(deps.Catalog, logg))
				r.Post("/next", controllers.MenuNext(deps.Catalog, logg))
				r.Post("/previous", controllers.MenuPrevious(deps.Catalog, logg))
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartShow(logg))
				r.Delete("/", controllers.CartClear(logg))
				r.Post("/items", controllers.CartAdd(deps.Catalog, logg))
				r.Put("/items/{itemID}", controllers.CartSetQuantity(logg))
				r.Delete("/items/{itemID}", controllers.CartRemove(logg))
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/", controllers.CheckoutSummary(deps.Checkout, logg))
				r.With(middleware.Idempotency(deps.IdempotencyStore, cfg.Checkout.IdempotencyTTL, logg)).
					Post("/", controllers.CheckoutSubmit(deps.Checkout, logg))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Get("/", controllers.AdminItemsList(deps.Catalog, logg))
			r.Post("/", controllers.AdminItemCreate(deps.Catalog, logg))
			r.Patch("/{itemID}", controllers.AdminItemUpdate(deps.Catalog, logg))
			r.Delete("/{itemID}", controllers.AdminItemDelete(deps.Catalog, logg))
			r.Post("/{itemID}/reorder", controllers.AdminItemReorder(deps.Catalog, logg))
		})
		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", controllers.AdminTransactionsList(deps.Transactions, logg))
			r.Get("/stats", controllers.AdminTransactionsStats(deps.Transactions, logg))
		})
	})

	return r
}
