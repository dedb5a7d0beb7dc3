package routes

import (
	"net/http"

	"github.com/giannis84/movie-hub/internal/auth"
	"github.com/giannis84/movie-hub/internal/logging"
)

// SessionResponse describes who is active on the device and how far their
// favorites have loaded.
type SessionResponse struct {
	UserID         string `json:"user_id,omitempty"`
	Active         bool   `json:"active"`
	FavoritesState string `json:"favorites_state"`
}

func sessionResponse(api API) SessionResponse {
	snapshot := api.Favorites.Snapshot()
	return SessionResponse{
		UserID:         snapshot.UserID,
		Active:         snapshot.UserID != "",
		FavoritesState: snapshot.State,
	}
}

func signInRoute(api API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := auth.UserIDFromContext(ctx)

		previous, _ := api.Sessions.Current()
		api.Sessions.SignIn(userID)

		logging.Log(ctx).Layer("routes").Op("signIn").User(userID).
			Str("previous_user_id", previous).Int("status_code", http.StatusOK).
			Info("user signed in")
		respondWithJSON(w, http.StatusOK, sessionResponse(api))
	}
}

func getSessionRoute(api API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, sessionResponse(api))
	}
}

func signOutRoute(api API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := auth.UserIDFromContext(ctx)

		active, ok := api.Sessions.Current()
		if ok && active != userID {
			logging.Log(ctx).Layer("routes").Op("signOut").User(userID).
				Str("active_user_id", active).Warn("sign out by a user who is not active")
			respondWithError(w, http.StatusForbidden, "Token subject is not the active user")
			return
		}

		api.Sessions.SignOut()

		logging.Log(ctx).Layer("routes").Op("signOut").User(userID).
			Int("status_code", http.StatusOK).Info("user signed out")
		respondWithJSON(w, http.StatusOK, sessionResponse(api))
	}
}
