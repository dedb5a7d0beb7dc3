package routes

import (
	"net/http"

	"github.com/giannis84/movie-hub/internal/database"
	"github.com/giannis84/movie-hub/internal/metrics"
	"github.com/go-chi/chi/v5"
)

// RegisterHealthRoutes creates the health check endpoints and, when m is
// set, the Prometheus scrape endpoint. Readiness requires every dependency to
// answer a ping.
func RegisterHealthRoutes(m *metrics.Metrics, deps ...database.Pinger) func(r chi.Router) {
	return func(r chi.Router) {
		r.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		})

		r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
			if len(deps) == 0 {
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte("database not ready"))
				return
			}
			for _, dep := range deps {
				if err := database.PingDB(r.Context(), dep); err != nil {
					w.WriteHeader(http.StatusServiceUnavailable)
					w.Write([]byte("database not ready"))
					return
				}
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("Ready"))
		})

		if m != nil {
			r.Method(http.MethodGet, "/metrics", m.Handler())
		}
	}
}
