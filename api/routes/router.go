package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hovo33651/shoppingcart-backend/api/controllers"
	"github.com/hovo33651/shoppingcart-backend/api/middleware"
	authsvc "github.com/hovo33651/shoppingcart-backend/internal/auth"
	ordersvc "github.com/hovo33651/shoppingcart-backend/internal/orders"
	productsvc "github.com/hovo33651/shoppingcart-backend/internal/products"
	"github.com/hovo33651/shoppingcart-backend/pkg/auth/session"
	"github.com/hovo33651/shoppingcart-backend/pkg/config"
	"github.com/hovo33651/shoppingcart-backend/pkg/db"
	"github.com/hovo33651/shoppingcart-backend/pkg/enums"
	"github.com/hovo33651/shoppingcart-backend/pkg/logger"
	"github.com/hovo33651/shoppingcart-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	cacheP redis.Pinger,
	sessions session.AccessSessionChecker,
	authService authsvc.Service,
	productService productsvc.Service,
	orderService ordersvc.Service,
	metricsReg *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, cacheP, logg))
	})

	if metricsReg != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metricsReg, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.Register(authService, logg))
		r.Post("/login", controllers.Login(authService, logg))
		r.Post("/refresh", controllers.Refresh(authService, logg))
		r.With(middleware.Auth(cfg.JWT, sessions, logg)).
			Post("/logout", controllers.Logout(authService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(productService, logg))
			r.Get("/{productId}", controllers.GetProduct(productService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(enums.UserRoleAdmin, logg))
				r.Post("/", controllers.CreateProduct(productService, logg))
				r.Put("/{productId}", controllers.UpdateProduct(productService, logg))
				r.Delete("/{productId}", controllers.DeleteProduct(productService, logg))
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListMyOrders(orderService, logg))
			r.Post("/", controllers.CreateOrder(orderService, logg))
			r.Get("/{orderId}", controllers.GetOrder(orderService, logg))
			r.Delete("/{orderId}", controllers.DeleteOrder(orderService, logg))
			r.With(middleware.RequireRole(enums.UserRoleAdmin, logg)).
				Put("/{orderId}/status", controllers.ChangeOrderStatus(orderService, logg))
		})
	})

	return r
}
