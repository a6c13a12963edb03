package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront/api/controllers"
	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// Storefront is everything the HTTP surface drives.
type Storefront interface {
	controllers.Pinger
	controllers.SessionService
	controllers.CartService
	controllers.WishlistService
	controllers.CatalogService
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	app Storefront,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Session(app),
		middleware.Logging(logg),
		middleware.CORS(cfg.HTTP.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, app))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(app, logg))
			r.Get("/{productId}", controllers.ProductDetail(app, logg))
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", controllers.AuthLogin(app, logg))
			r.Post("/logout", controllers.AuthLogout(app, logg))
			r.Get("/session", controllers.AuthSession(app, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(app, logg))
			r.Post("/", controllers.CartAdd(app, logg))
			r.Delete("/", controllers.CartClear(app, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistFetch(app, logg))
			r.Post("/", controllers.WishlistAdd(app, logg))
			r.Delete("/", controllers.WishlistClear(app, logg))
		})
	})

	return r
}
