package database

import (
	"context"

	"github.com/giannis84/movie-hub/internal/models"
)

// MovieRepository defines the interface for the shared movie catalog.
type MovieRepository interface {
	ListMovies(ctx context.Context) ([]*models.Movie, error)
	GetMovie(ctx context.Context, id string) (*models.Movie, error)
	CreateMovie(ctx context.Context, movie *models.Movie) error
	UpdateMovie(ctx context.Context, id string, update *models.MovieUpdate) error
	DeleteMovie(ctx context.Context, id string) error
}
