package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/martapp/backend/internal/config"
	"github.com/martapp/backend/internal/handlers"
	"github.com/martapp/backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	catalogHandler *handlers.CatalogHandler,
	cartHandler *handlers.CartHandler,
	favoritesHandler *handlers.FavoritesHandler,
	settingsHandler *handlers.SettingsHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Session gate for the navigation layer; readable before login.
	api.Get("/session", authHandler.Session)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/signup", authHandler.SignUp)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)

	// Catalog — public browse
	api.Get("/products", catalogHandler.ListProducts)
	api.Get("/products/:id", catalogHandler.GetProduct)
	api.Get("/categories", catalogHandler.ListCategories)

	// Cart — requires a valid access token
	cart := api.Group("/cart", middleware.JWTProtected(cfg))
	cart.Get("/", cartHandler.List)
	cart.Post("/", cartHandler.Add)
	cart.Put("/:productId", cartHandler.UpdateQuantity)
	cart.Delete("/:productId", cartHandler.Remove)
	cart.Delete("/", cartHandler.Clear)
	cart.Post("/checkout", cartHandler.Checkout)
	cart.Get("/receipts", cartHandler.Receipts)

	// Favorites
	favorites := api.Group("/favorites", middleware.JWTProtected(cfg))
	favorites.Get("/", favoritesHandler.List)
	favorites.Post("/toggle", favoritesHandler.Toggle)
	favorites.Get("/:productId", favoritesHandler.IsFavorite)

	// Settings
	settings := api.Group("/settings", middleware.JWTProtected(cfg))
	settings.Put("/profile", settingsHandler.UpdateProfile)
	settings.Put("/password", settingsHandler.ChangePassword)
	settings.Put("/dark-mode", settingsHandler.SetDarkMode)
}
