package routes

import (
	"github.com/giannis84/movie-hub/internal/auth"
	"github.com/giannis84/movie-hub/internal/config"
	"github.com/giannis84/movie-hub/internal/database"
	"github.com/giannis84/movie-hub/internal/favorites"
	"github.com/giannis84/movie-hub/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// API holds what the /api/v1 handlers work with.
type API struct {
	Movies    database.MovieRepository
	Sessions  *session.Provider
	Favorites *favorites.Store
}

// RegisterAPIRoutes sets up the session, movie and favorites API routes.
// HTTP concerns are handled here, while business logic is delegated to the
// handlers and favorites packages.
func RegisterAPIRoutes(api API, authCfg auth.AuthConfig, rateLimit config.RateLimitConfig) func(r chi.Router) {
	return func(r chi.Router) {
		r.Route("/api/v1", func(r chi.Router) {
			if rateLimit.Requests > 0 {
				r.Use(httprate.LimitByIP(rateLimit.Requests, rateLimit.Window))
			}
			r.Use(auth.JWTMiddleware(authCfg))
			r.Use(requireJSONAccept)
			r.Use(requireJSONContentType)

			r.Route("/session", func(r chi.Router) {
				r.Post("/", signInRoute(api))
				r.Get("/", getSessionRoute(api))
				r.Delete("/", signOutRoute(api))
			})

			r.Route("/movies", func(r chi.Router) {
				r.Get("/", listMoviesRoute(api))
				r.Post("/", createMovieRoute(api))
				r.Get("/{movieID}", getMovieRoute(api))
				r.Patch("/{movieID}", updateMovieRoute(api))
				r.Delete("/{movieID}", deleteMovieRoute(api))
			})

			r.Route("/favorites", func(r chi.Router) {
				r.Use(activeUserOnly(api.Sessions))
				r.Get("/", getFavoritesRoute(api))
				r.Delete("/", clearFavoritesRoute(api))
				r.Get("/movies", getFavoriteMoviesRoute(api))
				r.Get("/{movieID}", isFavoriteRoute(api))
				r.Post("/{movieID}/toggle", toggleFavoriteRoute(api))
			})
		})
	}
}
