package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/giannis84/movie-hub/internal/database"
	"github.com/giannis84/movie-hub/internal/logging"
	"github.com/giannis84/movie-hub/internal/models"
	"github.com/google/uuid"
)

// testContext returns a context with a discarding logger for tests.
func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return logging.NewContextWithLogger(context.Background(), logger)
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func validMovieRequest() *MovieRequest {
	return &MovieRequest{
		Name:        "Heat",
		Director:    "Michael Mann",
		Genres:      "Crime, Thriller",
		Actors:      "Al Pacino, Robert De Niro",
		Released:    "1995",
		Description: "A group of professional bank robbers.",
		IMDbRating:  8.3,
	}
}

func catalogFixture() *database.MockMovieRepository {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	updated := time.Date(2025, 1, 15, 8, 30, 0, 0, time.UTC)
	return database.NewMockMovieRepository(
		&models.Movie{
			ID: "m1", Name: "Heat", Director: "Michael Mann", Genres: "Crime",
			Actors: "Al Pacino", Released: "1995", Description: "Bank robbers in LA",
			IMDbRating: 8.3, UserID: "alice", CreatedAt: created,
		},
		&models.Movie{
			ID: "m2", Name: "Alien", Director: "Ridley Scott", Genres: "Horror, Sci-Fi",
			Actors: "Sigourney Weaver", Released: "1979", Description: "A crew meets a creature",
			IMDbRating: 8.5, UserID: "bob", CreatedAt: created.Add(time.Hour), UpdatedAt: &updated,
		},
	)
}

// --- Handler tests ---

func TestCreateMovie(t *testing.T) {
	tests := []struct {
		name       string
		req        func() *MovieRequest
		wantErr    bool
		wantValErr bool   // expect *ValidationError
		errSubstr  string // substring expected in error message
	}{
		{
			name: "valid movie",
			req:  validMovieRequest,
		},
		{
			name: "valid movie with image",
			req: func() *MovieRequest {
				r := validMovieRequest()
				r.ImageURL = "https://img.example.com/heat.jpg"
				return r
			},
		},
		{
			name: "missing name returns validation error",
			req: func() *MovieRequest {
				r := validMovieRequest()
				r.Name = "   "
				return r
			},
			wantErr:    true,
			wantValErr: true,
			errSubstr:  "name is required",
		},
		{
			name: "missing director and description are both reported",
			req: func() *MovieRequest {
				r := validMovieRequest()
				r.Director = ""
				r.Description = ""
				return r
			},
			wantErr:    true,
			wantValErr: true,
			errSubstr:  "director is required; description is required",
		},
		{
			name: "rating above ten returns validation error",
			req: func() *MovieRequest {
				r := validMovieRequest()
				r.IMDbRating = 10.5
				return r
			},
			wantErr:    true,
			wantValErr: true,
			errSubstr:  "imdb_rating must be between 0 and 10",
		},
		{
			name: "relative image url returns validation error",
			req: func() *MovieRequest {
				r := validMovieRequest()
				r.ImageURL = "file:///tmp/poster.png"
				return r
			},
			wantErr:    true,
			wantValErr: true,
			errSubstr:  "image_url must be an absolute http or https URL",
		},
		{
			name: "name too long returns validation error",
			req: func() *MovieRequest {
				r := validMovieRequest()
				r.Name = strings.Repeat("n", 256)
				return r
			},
			wantErr:    true,
			wantValErr: true,
			errSubstr:  "name exceeds maximum length",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := database.NewMockMovieRepository()
			ctx := testContext()

			movie, err := CreateMovie(ctx, repo, "alice", tt.req())

			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if tt.wantErr {
				if tt.wantValErr {
					var valErr *ValidationError
					if !errors.As(err, &valErr) {
						t.Fatalf("expected *ValidationError, got %T: %v", err, err)
					}
				}
				if !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("expected error to contain %q, got: %v", tt.errSubstr, err)
				}
				return
			}

			// verify movie was stored on success
			if _, err := uuid.Parse(movie.ID); err != nil {
				t.Errorf("expected a UUID id, got %q", movie.ID)
			}
			if movie.UserID != "alice" || movie.CreatedAt.IsZero() {
				t.Errorf("unexpected movie metadata: %+v", movie)
			}
			stored, err := repo.GetMovie(ctx, movie.ID)
			if err != nil {
				t.Fatalf("expected movie to be stored in repository: %v", err)
			}
			if stored.Name != "Heat" {
				t.Errorf("expected name Heat, got %q", stored.Name)
			}
		})
	}
}

func TestCreateMovie_TrimsFields(t *testing.T) {
	repo := database.NewMockMovieRepository()
	req := validMovieRequest()
	req.Name = "  Heat  "
	req.ImageURL = "   "

	movie, err := CreateMovie(testContext(), repo, "alice", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if movie.Name != "Heat" {
		t.Errorf("expected trimmed name, got %q", movie.Name)
	}
	if movie.ImageURL != "" {
		t.Errorf("expected blank image url to be dropped, got %q", movie.ImageURL)
	}
}

func TestUpdateMovie(t *testing.T) {
	tests := []struct {
		name       string
		movieID    string
		req        *MovieUpdateRequest
		wantErr    bool
		wantValErr bool
		errSubstr  string
		check      func(t *testing.T, m *models.Movie)
	}{
		{
			name:    "partial update keeps other fields",
			movieID: "m1",
			req:     &MovieUpdateRequest{Description: strPtr("  New description "), IMDbRating: floatPtr(9)},
			check: func(t *testing.T, m *models.Movie) {
				if m.Description != "New description" || m.IMDbRating != 9 {
					t.Errorf("update not applied: %+v", m)
				}
				if m.Name != "Heat" || m.Director != "Michael Mann" {
					t.Errorf("untouched fields changed: %+v", m)
				}
				if m.UpdatedAt == nil {
					t.Error("expected updated_at to be set")
				}
			},
		},
		{
			name:       "blank name returns validation error",
			movieID:    "m1",
			req:        &MovieUpdateRequest{Name: strPtr(" ")},
			wantErr:    true,
			wantValErr: true,
			errSubstr:  "name is required",
		},
		{
			name:       "negative rating returns validation error",
			movieID:    "m1",
			req:        &MovieUpdateRequest{IMDbRating: floatPtr(-1)},
			wantErr:    true,
			wantValErr: true,
			errSubstr:  "imdb_rating must be between 0 and 10",
		},
		{
			name:      "non-existent movie returns not found",
			movieID:   "nonexistent",
			req:       &MovieUpdateRequest{Name: strPtr("Anything")},
			wantErr:   true,
			errSubstr: "not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := catalogFixture()
			ctx := testContext()

			err := UpdateMovie(ctx, repo, tt.movieID, tt.req)

			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if tt.wantErr {
				if tt.wantValErr {
					var valErr *ValidationError
					if !errors.As(err, &valErr) {
						t.Fatalf("expected *ValidationError, got %T: %v", err, err)
					}
				}
				if !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("expected error to contain %q, got: %v", tt.errSubstr, err)
				}
				return
			}

			m, err := repo.GetMovie(ctx, tt.movieID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, m)
		})
	}
}

func TestDeleteMovie(t *testing.T) {
	tests := []struct {
		name    string
		movieID string
		wantErr error
	}{
		{name: "deletes existing movie", movieID: "m1"},
		{name: "unknown movie returns not found", movieID: "nonexistent", wantErr: database.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := catalogFixture()
			ctx := testContext()

			err := DeleteMovie(ctx, repo, tt.movieID)
			if err != tt.wantErr {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr == nil {
				if _, err := repo.GetMovie(ctx, tt.movieID); err != database.ErrNotFound {
					t.Error("expected movie to be gone")
				}
			}
		})
	}
}

func TestSearchMovies(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "blank query lists everything", query: "  ", want: []string{"m2", "m1"}},
		{name: "matches name case-insensitively", query: "hEaT", want: []string{"m1"}},
		{name: "matches director", query: "scott", want: []string{"m2"}},
		{name: "matches genres", query: "sci-fi", want: []string{"m2"}},
		{name: "matches actors", query: "pacino", want: []string{"m1"}},
		{name: "matches description", query: "creature", want: []string{"m2"}},
		{name: "matches rating", query: "8.5", want: []string{"m2"}},
		{name: "matches release", query: "1979", want: []string{"m2"}},
		{name: "matches owner", query: "alice", want: []string{"m1"}},
		{name: "matches created timestamp", query: "2024-03-01", want: []string{"m2", "m1"}},
		{name: "matches updated timestamp", query: "2025-01-15", want: []string{"m2"}},
		{name: "surrounding spaces are ignored", query: " alien ", want: []string{"m2"}},
		{name: "no match", query: "godfather", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			movies, err := SearchMovies(testContext(), catalogFixture(), tt.query)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got := make([]string, 0, len(movies))
			for _, m := range movies {
				got = append(got, m.ID)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("SearchMovies(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestSearchMovies_RepositoryError(t *testing.T) {
	repo := catalogFixture()
	repo.Fail(errors.New("connection failed"))

	if _, err := SearchMovies(testContext(), repo, "heat"); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestFavoriteMovies(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want []string
	}{
		{name: "no favorites", ids: nil, want: []string{}},
		{name: "catalog order is kept", ids: []string{"m1", "m2"}, want: []string{"m2", "m1"}},
		{name: "deleted movies are skipped", ids: []string{"gone", "m1"}, want: []string{"m1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			movies, err := FavoriteMovies(testContext(), catalogFixture(), tt.ids)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := make([]string, 0, len(movies))
			for _, m := range movies {
				got = append(got, m.ID)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("FavoriteMovies(%v) = %v, want %v", tt.ids, got, tt.want)
			}
		})
	}
}

// --- Validation tests ---

func TestValidateMovieID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "valid id", id: "m1"},
		{name: "empty id", id: "", wantErr: true},
		{name: "whitespace id", id: "  ", wantErr: true},
		{name: "too long", id: strings.Repeat("x", 256), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMovieID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMovieID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestValidationErrorCollectsAllFieldErrors(t *testing.T) {
	err := validateMovieRequest(&MovieRequest{IMDbRating: 11})

	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(valErr.Errors) != 4 {
		t.Errorf("expected 4 field errors, got %d: %v", len(valErr.Errors), valErr.Errors)
	}
}
