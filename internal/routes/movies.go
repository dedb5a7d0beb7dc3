package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/giannis84/movie-hub/internal/auth"
	"github.com/giannis84/movie-hub/internal/database"
	"github.com/giannis84/movie-hub/internal/handlers"
	"github.com/giannis84/movie-hub/internal/logging"
	"github.com/go-chi/chi/v5"
)

func listMoviesRoute(api API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		query := r.URL.Query().Get("q")

		movies, err := handlers.SearchMovies(ctx, api.Movies, query)
		if err != nil {
			logging.Log(ctx).Layer("routes").Op("listMovies").Str("query", query).Err(err).
				Error("failed to list movies")
			respondWithError(w, http.StatusInternalServerError, "Failed to list movies")
			return
		}

		logging.Log(ctx).Layer("routes").Op("listMovies").Str("query", query).
			Int("count", len(movies)).Int("status_code", http.StatusOK).
			Info("movies listed")
		respondWithJSON(w, http.StatusOK, movies)
	}
}

func getMovieRoute(api API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		movieID := chi.URLParam(r, "movieID")

		if err := handlers.ValidateMovieID(movieID); err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		movie, err := handlers.GetMovie(ctx, api.Movies, movieID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Movie not found")
				return
			}
			logging.Log(ctx).Layer("routes").Op("getMovie").Movie(movieID).Err(err).
				Error("failed to get movie")
			respondWithError(w, http.StatusInternalServerError, "Failed to get movie")
			return
		}
		respondWithJSON(w, http.StatusOK, movie)
	}
}

func createMovieRoute(api API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := auth.UserIDFromContext(ctx)

		var req handlers.MovieRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logging.Log(ctx).Layer("routes").Op("createMovie").User(userID).Err(err).
				Error("failed to decode request body")
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		movie, err := handlers.CreateMovie(ctx, api.Movies, userID, &req)
		if err != nil {
			var validationErr *handlers.ValidationError
			if errors.As(err, &validationErr) {
				logging.Log(ctx).Layer("routes").Op("createMovie").User(userID).Err(err).
					Warn("invalid create movie request")
				respondWithError(w, http.StatusBadRequest, err.Error())
				return
			}
			if errors.Is(err, database.ErrAlreadyExists) {
				respondWithError(w, http.StatusConflict, "Movie already exists")
				return
			}
			logging.Log(ctx).Layer("routes").Op("createMovie").User(userID).Err(err).
				Error("failed to create movie")
			respondWithError(w, http.StatusInternalServerError, "Failed to create movie")
			return
		}

		logging.Log(ctx).Layer("routes").Op("createMovie").User(userID).Movie(movie.ID).
			Int("status_code", http.StatusCreated).Info("movie created")
		respondWithJSON(w, http.StatusCreated, movie)
	}
}

func updateMovieRoute(api API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := auth.UserIDFromContext(ctx)
		movieID := chi.URLParam(r, "movieID")

		if err := handlers.ValidateMovieID(movieID); err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		var req handlers.MovieUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logging.Log(ctx).Layer("routes").Op("updateMovie").User(userID).Movie(movieID).Err(err).
				Error("failed to decode request body")
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		err := handlers.UpdateMovie(ctx, api.Movies, movieID, &req)
		if err != nil {
			var validationErr *handlers.ValidationError
			if errors.As(err, &validationErr) {
				logging.Log(ctx).Layer("routes").Op("updateMovie").User(userID).Movie(movieID).Err(err).
					Warn("validation error on update movie")
				respondWithError(w, http.StatusBadRequest, err.Error())
				return
			}
			if errors.Is(err, database.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Movie not found")
				return
			}
			logging.Log(ctx).Layer("routes").Op("updateMovie").User(userID).Movie(movieID).Err(err).
				Error("failed to update movie")
			respondWithError(w, http.StatusInternalServerError, "Failed to update movie")
			return
		}

		logging.Log(ctx).Layer("routes").Op("updateMovie").User(userID).Movie(movieID).
			Int("status_code", http.StatusOK).Info("movie updated")
		respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Movie updated successfully"})
	}
}

func deleteMovieRoute(api API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := auth.UserIDFromContext(ctx)
		movieID := chi.URLParam(r, "movieID")

		if err := handlers.ValidateMovieID(movieID); err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := handlers.DeleteMovie(ctx, api.Movies, movieID); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Movie not found")
				return
			}
			logging.Log(ctx).Layer("routes").Op("deleteMovie").User(userID).Movie(movieID).Err(err).
				Error("failed to delete movie")
			respondWithError(w, http.StatusInternalServerError, "Failed to delete movie")
			return
		}

		logging.Log(ctx).Layer("routes").Op("deleteMovie").User(userID).Movie(movieID).
			Int("status_code", http.StatusOK).Info("movie deleted")
		respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Movie deleted successfully"})
	}
}
