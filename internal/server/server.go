// Package server assembles the HTTP application: middleware, the error
// handler and every resource route.
package server

import (
	"time"

	"sportshop/internal/auth"
	"sportshop/internal/handlers"
	"sportshop/internal/middleware"
	"sportshop/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Deps are the collaborators the routes are built from.
type Deps struct {
	Gate     *auth.Gate
	Users    *services.UserService
	Products *services.ProductService
	Carts    *services.CartService
	Orders   *services.OrderService

	// UploadDir, when set, is served at /uploads.
	UploadDir string
	// ExposeErrors adds internal error detail to 500 responses.
	ExposeErrors bool
	// RequestLog enables the per request access log line.
	RequestLog bool
}

// New builds the fiber app.
func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "sportshop",
		ErrorHandler: handlers.ErrorHandler(d.ExposeErrors),
		BodyLimit:    10 * 1024 * 1024,
	})

	app.Use(recover.New())
	if d.RequestLog {
		app.Use(logger.New())
	}
	app.Use(helmet.New(helmet.Config{CrossOriginResourcePolicy: "cross-origin"}))
	app.Use(cors.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "API is running"})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	if d.UploadDir != "" {
		app.Static("/uploads", d.UploadDir)
	}

	authn := middleware.Authenticate(d.Gate)
	api := app.Group("/api")
	handlers.NewAuthHandler(d.Users).RegisterRoutes(api, authn)
	handlers.NewUserHandler(d.Users).RegisterRoutes(api, authn)
	handlers.NewProductHandler(d.Products).RegisterRoutes(api, authn)
	handlers.NewCartHandler(d.Carts).RegisterRoutes(api, authn)
	handlers.NewOrderHandler(d.Orders).RegisterRoutes(api, authn)

	return app
}
