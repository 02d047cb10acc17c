package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/crud-backends/internal/api/http/handlers"
	"github.com/spec-kit/crud-backends/internal/auth"
	"github.com/spec-kit/crud-backends/internal/domain"
	"github.com/spec-kit/crud-backends/internal/observability"
)

// RegisterOpsRoutes wires the probes and the metrics endpoint every backend exposes.
func RegisterOpsRoutes(app *fiber.App, health *handlers.HealthHandler, metrics *observability.Metrics) {
	app.Get("/health/live", health.Live)
	app.Get("/health/ready", health.Ready)
	if metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	}
}

// FyyurRoutes bundles the booking site handlers.
type FyyurRoutes struct {
	Home    *handlers.HomeHandler
	Venues  *handlers.VenuesHandler
	Artists *handlers.ArtistsHandler
	Shows   *handlers.ShowsHandler
}

// RegisterFyyurRoutes wires the booking site.
func RegisterFyyurRoutes(app *fiber.App, r FyyurRoutes) {
	app.Get("/", r.Home.Index)

	venues := app.Group("/venues")
	venues.Get("/", r.Venues.List)
	venues.Post("/", r.Venues.Create)
	venues.Post("/search", r.Venues.Search)
	venues.Get("/:id", r.Venues.Get)
	venues.Patch("/:id", r.Venues.Update)
	venues.Delete("/:id", r.Venues.Delete)

	artists := app.Group("/artists")
	artists.Get("/", r.Artists.List)
	artists.Post("/", r.Artists.Create)
	artists.Post("/search", r.Artists.Search)
	artists.Get("/:id", r.Artists.Get)
	artists.Patch("/:id", r.Artists.Update)
	artists.Delete("/:id", r.Artists.Delete)

	app.Get("/shows", r.Shows.List)
	app.Post("/shows", r.Shows.Create)
}

// TriviaRoutes bundles the trivia handlers.
type TriviaRoutes struct {
	Categories *handlers.CategoriesHandler
	Questions  *handlers.QuestionsHandler
	Quizzes    *handlers.QuizzesHandler
}

// RegisterTriviaRoutes wires the trivia API.
func RegisterTriviaRoutes(app *fiber.App, r TriviaRoutes) {
	app.Get("/categories", r.Categories.List)
	app.Get("/categories/:id/questions", r.Categories.Questions)

	app.Get("/questions", r.Questions.List)
	app.Post("/questions", r.Questions.Create)
	app.Post("/questions/search", r.Questions.Search)
	app.Delete("/questions/:id", r.Questions.Delete)

	app.Post("/quizzes", r.Quizzes.Next)
}

// CoffeeRoutes bundles the drinks handler and the verifier guarding it.
type CoffeeRoutes struct {
	Drinks   *handlers.DrinksHandler
	Verifier *auth.Verifier
}

// RegisterCoffeeRoutes wires the drinks API. Only GET /drinks is public.
func RegisterCoffeeRoutes(app *fiber.App, r CoffeeRoutes) {
	require := func(permission string) fiber.Handler {
		return auth.RequirePermission(r.Verifier, permission)
	}

	app.Get("/drinks", r.Drinks.List)
	app.Get("/drinks-detail", require(domain.PermissionGetDrinksDetail), r.Drinks.Detail)
	app.Post("/drinks", require(domain.PermissionPostDrinks), r.Drinks.Create)
	app.Patch("/drinks/:id", require(domain.PermissionPatchDrinks), r.Drinks.Update)
	app.Delete("/drinks/:id", require(domain.PermissionDeleteDrinks), r.Drinks.Delete)
}
