package router

import (
	"net/http"

	"recipe-api/internal/handler"
	"recipe-api/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Options configures the cross-cutting middleware.
type Options struct {
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// New creates a new HTTP router with all routes and middleware configured.
func New(
	recipeHandler *handler.RecipeHandler,
	healthHandler *handler.HealthHandler,
	opts Options,
	logger zerolog.Logger,
) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Metrics)

	r.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	r.HandleFunc("/ready", healthHandler.Ready).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// {title} and {recipeId} match a single path segment.
	r.HandleFunc("/recipes", recipeHandler.Create).Methods(http.MethodPost)
	r.HandleFunc("/recipes", recipeHandler.GetAll).Methods(http.MethodGet)
	r.HandleFunc("/recipes/author/{authorName}", recipeHandler.GetByAuthor).Methods(http.MethodGet)
	r.HandleFunc("/recipes/difficulty/{level}", recipeHandler.GetByDifficulty).Methods(http.MethodGet)
	r.HandleFunc("/recipes/id/{recipeId}", recipeHandler.GetByID).Methods(http.MethodGet)
	r.HandleFunc("/recipes/title/{recipeTitle}", recipeHandler.UpdateByTitle).Methods(http.MethodPost)
	r.HandleFunc("/recipes/{title}", recipeHandler.GetByTitle).Methods(http.MethodGet)
	r.HandleFunc("/recipes/{recipeId}", recipeHandler.UpdateByID).Methods(http.MethodPost)
	r.HandleFunc("/recipes/{recipeId}", recipeHandler.DeleteByID).Methods(http.MethodDelete)

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS -> RateLimit
	var h http.Handler = r
	h = middleware.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst, logger)(h)
	h = middleware.CORS(opts.AllowedOrigins)(h)
	h = middleware.Logging(logger)(h)
	h = middleware.RequestID(h)
	h = middleware.Recovery(logger)(h)

	return h
}
