package router

import (
	"github.com/weihanng/techtrove/internal/application"
	"github.com/weihanng/techtrove/internal/container"
	pginfra "github.com/weihanng/techtrove/internal/infrastructure/postgres"
	handlers "github.com/weihanng/techtrove/internal/interface/http"
	"github.com/weihanng/techtrove/internal/router/modules"
)

type Deps struct {
	Auth     *application.AuthService
	Catalog  *application.CatalogService
	Cart     *application.CartService
	Checkout *application.CheckoutService
	Orders   *application.OrderService
	Reviews  *application.ReviewService
}

// queuePublisher adapts the container's concrete publisher to the
// Publisher interface. When RabbitMQ is unconfigured the container
// holds a nil pointer; returning it directly would produce a non-nil
// interface that panics on use, so the absence is mapped to a true nil.
func queuePublisher() application.Publisher {
	if pub := container.GetRabbitPub(); pub != nil {
		return pub
	}
	return nil
}

func buildDeps() Deps {
	cfg := container.GetConfig()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	products := pginfra.NewProductRepository(pool)
	carts := pginfra.NewCartRepository(pool)
	orders := pginfra.NewOrderRepository(pool)
	reviews := pginfra.NewReviewRepository(pool)

	auth := &application.AuthService{
		Users:    users,
		JWT:      container.GetJWT(),
		Redis:    container.GetRedis(),
		Pub:      queuePublisher(),
		Logger:   container.GetLogger(),
		ResetURL: cfg.ResetPasswordURL,
		Company:  cfg.CompanyName,
	}

	catalog := &application.CatalogService{
		Products:  products,
		Reviews:   reviews,
		GCS:       container.GetGCS(),
		GCSBucket: cfg.GCSBucket,
		ES:        container.GetES(),
		ESIndex:   cfg.ESProductsIndex,
		Logger:    container.GetLogger(),
		PerPage:   cfg.ProductsPerPage,
	}

	cart := &application.CartService{
		Carts:    carts,
		Products: products,
		Logger:   container.GetLogger(),
	}

	checkout := &application.CheckoutService{
		Carts:    carts,
		Payments: container.GetPayments(),
		Logger:   container.GetLogger(),
	}

	order := &application.OrderService{
		Orders:  orders,
		Carts:   carts,
		Users:   users,
		Pub:     queuePublisher(),
		Logger:  container.GetLogger(),
		Company: cfg.CompanyName,
	}

	review := &application.ReviewService{
		Reviews:  reviews,
		Products: products,
		Orders:   orders,
		Logger:   container.GetLogger(),
	}

	return Deps{
		Auth:     auth,
		Catalog:  catalog,
		Cart:     cart,
		Checkout: checkout,
		Orders:   order,
		Reviews:  review,
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	deps := buildDeps()

	authHandler := handlers.NewAuthHandler(deps.Auth, logger, cfg.CookieDomain, cfg.CookieSecure)
	catalogHandler := handlers.NewCatalogHandler(deps.Catalog, logger)
	cartHandler := handlers.NewCartHandler(deps.Cart, logger)
	checkoutHandler := handlers.NewCheckoutHandler(deps.Checkout, deps.Orders, deps.Cart, logger)
	orderHandler := handlers.NewOrderHandler(deps.Orders, deps.Reviews, logger)
	adminHandler := handlers.NewAdminHandler(deps.Catalog, logger)

	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))
	r.Add(modules.NewCatalogModule(catalogHandler))
	r.Add(modules.NewCartModule(cartHandler, container.GetJWT()))
	r.Add(modules.NewCheckoutModule(checkoutHandler, deps.Cart, container.GetJWT()))
	r.Add(modules.NewOrderModule(orderHandler, deps.Cart, container.GetJWT()))
	r.Add(modules.NewAdminModule(adminHandler, container.GetJWT()))
}
