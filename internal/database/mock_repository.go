package database

import (
	"context"
	"sort"
	"sync"

	"github.com/giannis84/movie-hub/internal/models"
)

// MockMovieRepository is a simple in-memory MovieRepository intended for unit tests only.
type MockMovieRepository struct {
	mu     sync.RWMutex
	movies map[string]*models.Movie
	err    error
}

// NewMockMovieRepository returns a MockMovieRepository for testing.
func NewMockMovieRepository(movies ...*models.Movie) *MockMovieRepository {
	r := &MockMovieRepository{movies: make(map[string]*models.Movie)}
	for _, m := range movies {
		r.movies[m.ID] = m
	}
	return r
}

// Fail makes every subsequent call return err. Pass nil to recover.
func (r *MockMovieRepository) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *MockMovieRepository) ListMovies(_ context.Context) ([]*models.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.err != nil {
		return nil, r.err
	}
	result := make([]*models.Movie, 0, len(r.movies))
	for _, m := range r.movies {
		copied := *m
		result = append(result, &copied)
	}
	// Newest first, like the Postgres repository.
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *MockMovieRepository) GetMovie(_ context.Context, id string) (*models.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.err != nil {
		return nil, r.err
	}
	m, exists := r.movies[id]
	if !exists {
		return nil, ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *MockMovieRepository) CreateMovie(_ context.Context, movie *models.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}
	if _, exists := r.movies[movie.ID]; exists {
		return ErrAlreadyExists
	}
	copied := *movie
	r.movies[movie.ID] = &copied
	return nil
}

func (r *MockMovieRepository) UpdateMovie(_ context.Context, id string, update *models.MovieUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}
	m, exists := r.movies[id]
	if !exists {
		return ErrNotFound
	}
	update.Apply(m)
	return nil
}

func (r *MockMovieRepository) DeleteMovie(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}
	if _, exists := r.movies[id]; !exists {
		return ErrNotFound
	}
	delete(r.movies, id)
	return nil
}
