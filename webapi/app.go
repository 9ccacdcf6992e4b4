package webapi

import (
	"log/slog"
	"time"

	"github.com/bankline/bankline/pkg/config"
	"github.com/bankline/bankline/pkg/currency"
	"github.com/bankline/bankline/pkg/store"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Deps bundles what the handlers need.
type Deps struct {
	Store      *store.Store
	Currencies *currency.Registry
	Logger     *slog.Logger
	Validate   *validator.Validate
	Cfg        *config.App
}

// NewApp builds the fiber application with all routes registered.
func NewApp(deps Deps) *fiber.App {
	if deps.Validate == nil {
		deps.Validate = validator.New()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})

	max := 20
	window := time.Second
	if deps.Cfg != nil {
		if deps.Cfg.Server.RateLimit > 0 {
			max = deps.Cfg.Server.RateLimit
		}
		if deps.Cfg.Server.RateLimitWindow > 0 {
			window = deps.Cfg.Server.RateLimitWindow
		}
	}
	app.Use(limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return ErrorResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
		},
	}))
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("bankline is up")
	})

	DashboardRoutes(app, deps)
	StateRoutes(app, deps)
	ExchangeRoutes(app, deps)
	BankRoutes(app, deps)
	MarketRoutes(app, deps)
	AnalyticsRoutes(app, deps)
	TransferRoutes(app, deps)
	AssistantRoutes(app, deps)

	return app
}
