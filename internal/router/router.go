package router

import (
	"net/http"
	"time"

	"nutricalc/internal/handler"
	"nutricalc/internal/middleware"
	"nutricalc/internal/model"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the API.
type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Nutrition *handler.NutritionHandler
	Recipe    *handler.RecipeHandler
}

// Limits holds the request budgets applied per client. Authenticated routes
// are limited per user, public routes per remote address. PerDay of 0
// disables the daily budget.
type Limits struct {
	PerHour         int
	PerDay          int
	SearchPerMinute int
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Only enable behind a proxy that overwrites those headers.
	TrustProxy bool
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, verifier middleware.TokenVerifier, limits Limits, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Recovery -> Logging -> CORS, with a request id available to all.
	r.Use(chimw.RequestID)
	if limits.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, r, http.StatusNotFound, model.ErrCodeNotFound, "Resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, r, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "Method not allowed")
	})

	budgets := []func(http.Handler) http.Handler{
		middleware.RateLimit(middleware.NewRateLimiter("hourly", limits.PerHour, time.Hour), logger),
	}
	if limits.PerDay > 0 {
		budgets = append(budgets, middleware.RateLimit(middleware.NewRateLimiter("daily", limits.PerDay, 24*time.Hour), logger))
	}
	searchLimiter := middleware.NewRateLimiter("search", limits.SearchPerMinute, time.Minute)

	r.Group(func(r chi.Router) {
		r.Use(budgets...)

		r.Get("/", h.Health.Health)
		r.Get("/health", h.Health.Health)

		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
	})

	// Budgets run after JWTAuth so they are keyed by user.
	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(verifier, logger))
		r.Use(budgets...)

		r.With(middleware.RateLimit(searchLimiter, logger)).Get("/search_ingredient", h.Nutrition.Search)
		r.Post("/calculate_nutrition", h.Nutrition.Calculate)
		r.Post("/save_recipe", h.Recipe.Save)
		r.Get("/get_recipes", h.Recipe.List)
		r.Post("/get_recipes", h.Recipe.List)
		r.Get("/recipes", h.Recipe.List)
	})

	return r
}
