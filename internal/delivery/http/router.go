package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kanishkarathore/mosspay-project/internal/config"
	accounthandler "github.com/kanishkarathore/mosspay-project/internal/delivery/http/handler/account"
	authhandler "github.com/kanishkarathore/mosspay-project/internal/delivery/http/handler/auth"
	billhandler "github.com/kanishkarathore/mosspay-project/internal/delivery/http/handler/bill"
	claimhandler "github.com/kanishkarathore/mosspay-project/internal/delivery/http/handler/claim"
	itemhandler "github.com/kanishkarathore/mosspay-project/internal/delivery/http/handler/item"
	"github.com/kanishkarathore/mosspay-project/internal/delivery/http/httperr"
	"github.com/kanishkarathore/mosspay-project/internal/delivery/middleware"
	"github.com/kanishkarathore/mosspay-project/internal/metrics"
	"github.com/kanishkarathore/mosspay-project/internal/refdata"
	accountuc "github.com/kanishkarathore/mosspay-project/internal/usecase/account"
	authuc "github.com/kanishkarathore/mosspay-project/internal/usecase/auth"
	billuc "github.com/kanishkarathore/mosspay-project/internal/usecase/bill"
	"github.com/kanishkarathore/mosspay-project/internal/usecase/catalog"
	claimuc "github.com/kanishkarathore/mosspay-project/internal/usecase/claim"
)

// Stores is one backend's implementation of every usecase store.
type Stores struct {
	Auth     authuc.Finder
	Catalog  catalog.Store
	Bills    billuc.Store
	Claims   claimuc.Store
	Accounts accountuc.Store
}

type Deps struct {
	Config   config.Config
	Log      *zap.Logger
	Metrics  *metrics.Metrics
	Registry *prometheus.Registry
	Tables   *refdata.Tables
	Stores   Stores
}

// NewServer builds the fiber app with the shared middleware chain and every
// route registered.
func NewServer(d Deps) *fiber.App {
	f := fiber.New(fiber.Config{
		AppName:      "mosspay",
		ErrorHandler: httperr.Handler(d.Log, d.Metrics),
	})

	f.Use(recover.New())
	f.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	f.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))

	RegisterRoutes(f, d)
	return f
}

func RegisterRoutes(app *fiber.App, d Deps) {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	if d.Registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	// Auth wiring
	loginUC := authuc.NewLoginUsecase(d.Stores.Auth, d.Config.JWTSecret, d.Config.JWTExpiresMinutes)
	loginH := authhandler.NewLoginHandler(loginUC)
	meH := authhandler.NewMeHandler()

	// Public routes
	api.Post("/vendor/login", loginH.Vendor)
	api.Post("/customer/login", loginH.Customer)

	jwt := middleware.NewJWTMiddleware(d.Config.JWTSecret)
	vendor := api.Group("/vendor", jwt.Protect(), middleware.RequireRole(authuc.RoleVendor))
	customer := api.Group("/customer", jwt.Protect(), middleware.RequireRole(authuc.RoleCustomer))

	itemH := itemhandler.New(catalog.New(d.Stores.Catalog, d.Tables))
	billH := billhandler.New(billuc.New(d.Stores.Bills, d.Log.Named("bill")), d.Metrics)
	claimH := claimhandler.New(claimuc.New(d.Stores.Claims, d.Log.Named("claim")), d.Metrics)
	accountH := accounthandler.New(accountuc.New(d.Stores.Accounts, d.Tables, d.Log.Named("account")), d.Metrics)

	// Vendor routes
	vendor.Get("/me", meH.Handle)
	vendor.Post("/items", itemH.Create)
	vendor.Get("/items", itemH.List)
	vendor.Get("/items/:id", itemH.Get)
	vendor.Post("/bills", billH.Create)
	vendor.Get("/bills", billH.List)
	vendor.Get("/bills/:id", billH.Get)

	// Customer routes
	customer.Get("/me", meH.Handle)
	customer.Post("/bills/claim", claimH.Claim)
	customer.Get("/bills", billH.List)
	customer.Get("/bills/:id", billH.Get)
	customer.Get("/account", accountH.Get)
	customer.Get("/rewards", accountH.Rewards)
	customer.Post("/rewards/redeem", accountH.Redeem)
}
