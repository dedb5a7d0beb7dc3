package routes

import (
	"net/http"

	"github.com/giannis84/movie-hub/internal/auth"
	"github.com/giannis84/movie-hub/internal/handlers"
	"github.com/giannis84/movie-hub/internal/logging"
	"github.com/giannis84/movie-hub/internal/models"
	"github.com/giannis84/movie-hub/internal/session"
	"github.com/go-chi/chi/v5"
)

// FavoriteStatus reports whether one movie is in the active user's set.
type FavoriteStatus struct {
	MovieID  string `json:"movie_id"`
	Favorite bool   `json:"favorite"`
	State    string `json:"state"`
}

// activeUserOnly rejects callers whose token subject differs from the signed-in
// user. With nobody signed in the request goes through and the store answers
// as an empty, read-only set.
func activeUserOnly(sessions *session.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := auth.UserIDFromContext(r.Context())
			if active, ok := sessions.Current(); ok && active != userID {
				logging.Log(r.Context()).Layer("routes").Op("activeUserOnly").User(userID).
					Str("active_user_id", active).Warn("favorites request from inactive user")
				respondWithError(w, http.StatusForbidden, "Token subject is not the active user")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func getFavoritesRoute(api API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, api.Favorites.Snapshot())
	}
}

func getFavoriteMoviesRoute(api API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := auth.UserIDFromContext(ctx)

		movies, err := handlers.FavoriteMovies(ctx, api.Movies, api.Favorites.CurrentFavorites())
		if err != nil {
			logging.Log(ctx).Layer("routes").Op("getFavoriteMovies").User(userID).Err(err).
				Error("failed to resolve favorite movies")
			respondWithError(w, http.StatusInternalServerError, "Failed to list favorite movies")
			return
		}

		logging.Log(ctx).Layer("routes").Op("getFavoriteMovies").User(userID).
			Int("count", len(movies)).Int("status_code", http.StatusOK).
			Info("favorite movies retrieved")
		respondWithJSON(w, http.StatusOK, movies)
	}
}

func isFavoriteRoute(api API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		movieID := chi.URLParam(r, "movieID")
		if err := handlers.ValidateMovieID(movieID); err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondWithJSON(w, http.StatusOK, FavoriteStatus{
			MovieID:  movieID,
			Favorite: api.Favorites.IsFavorite(movieID),
			State:    api.Favorites.State().String(),
		})
	}
}

func toggleFavoriteRoute(api API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := auth.UserIDFromContext(ctx)
		movieID := chi.URLParam(r, "movieID")

		if err := handlers.ValidateMovieID(movieID); err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		// Only the ID is stored, so the catalog is not consulted here.
		api.Favorites.ToggleFavorite(models.Movie{ID: movieID})

		status := FavoriteStatus{
			MovieID:  movieID,
			Favorite: api.Favorites.IsFavorite(movieID),
			State:    api.Favorites.State().String(),
		}
		logging.Log(ctx).Layer("routes").Op("toggleFavorite").User(userID).Movie(movieID).
			Bool("favorite", status.Favorite).Int("status_code", http.StatusOK).
			Info("favorite toggled")
		respondWithJSON(w, http.StatusOK, status)
	}
}

func clearFavoritesRoute(api API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := auth.UserIDFromContext(ctx)

		api.Favorites.ClearFavorites(ctx)

		snapshot := api.Favorites.Snapshot()
		logging.Log(ctx).Layer("routes").Op("clearFavorites").User(userID).
			Int("count", len(snapshot.MovieIDs)).Int("status_code", http.StatusOK).
			Info("clear favorites handled")
		respondWithJSON(w, http.StatusOK, snapshot)
	}
}
