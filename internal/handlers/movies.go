package handlers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/giannis84/movie-hub/internal/database"
	"github.com/giannis84/movie-hub/internal/models"
	"github.com/google/uuid"
)

// MovieRequest is the body of a create request.
type MovieRequest struct {
	Name        string  `json:"name"`
	Director    string  `json:"director"`
	Genres      string  `json:"genres"`
	Actors      string  `json:"actors"`
	Released    string  `json:"released"`
	Description string  `json:"description"`
	IMDbRating  float64 `json:"imdb_rating"`
	ImageURL    string  `json:"image_url"`
}

// MovieUpdateRequest is the body of a partial update. Absent fields stay unchanged.
type MovieUpdateRequest struct {
	Name        *string  `json:"name"`
	Director    *string  `json:"director"`
	Genres      *string  `json:"genres"`
	Actors      *string  `json:"actors"`
	Released    *string  `json:"released"`
	Description *string  `json:"description"`
	IMDbRating  *float64 `json:"imdb_rating"`
	ImageURL    *string  `json:"image_url"`
}

func ListMovies(ctx context.Context, repo database.MovieRepository) ([]*models.Movie, error) {
	return repo.ListMovies(ctx)
}

func GetMovie(ctx context.Context, repo database.MovieRepository, id string) (*models.Movie, error) {
	return repo.GetMovie(ctx, id)
}

// SearchMovies pulls the whole catalog and keeps the movies matching query.
// A blank query returns everything.
func SearchMovies(ctx context.Context, repo database.MovieRepository, query string) ([]*models.Movie, error) {
	movies, err := repo.ListMovies(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return movies, nil
	}

	matches := make([]*models.Movie, 0, len(movies))
	for _, m := range movies {
		if movieMatches(m, needle) {
			matches = append(matches, m)
		}
	}
	return matches, nil
}

// movieMatches reports whether the lowercased needle occurs in any searchable field.
func movieMatches(m *models.Movie, needle string) bool {
	fields := []string{
		m.Name,
		m.Director,
		m.Genres,
		m.Actors,
		m.Description,
		strconv.FormatFloat(m.IMDbRating, 'f', -1, 64),
		m.Released,
		m.UserID,
		m.CreatedAt.Format(time.RFC3339),
	}
	if m.UpdatedAt != nil {
		fields = append(fields, m.UpdatedAt.Format(time.RFC3339))
	}

	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// CreateMovie validates req and stores it as a new catalog entry owned by ownerID.
func CreateMovie(ctx context.Context, repo database.MovieRepository, ownerID string, req *MovieRequest) (*models.Movie, error) {
	trimMovieRequest(req)
	if err := validateMovieRequest(req); err != nil {
		return nil, err
	}

	movie := &models.Movie{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Director:    req.Director,
		Genres:      req.Genres,
		Actors:      req.Actors,
		Released:    req.Released,
		Description: req.Description,
		IMDbRating:  req.IMDbRating,
		ImageURL:    req.ImageURL,
		UserID:      ownerID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := repo.CreateMovie(ctx, movie); err != nil {
		return nil, err
	}
	return movie, nil
}

// UpdateMovie applies the fields present in req to the movie with the given id.
func UpdateMovie(ctx context.Context, repo database.MovieRepository, id string, req *MovieUpdateRequest) error {
	trimMovieUpdate(req)
	if err := validateMovieUpdate(req); err != nil {
		return err
	}

	update := &models.MovieUpdate{
		Name:        req.Name,
		Director:    req.Director,
		Genres:      req.Genres,
		Actors:      req.Actors,
		Released:    req.Released,
		Description: req.Description,
		IMDbRating:  req.IMDbRating,
		ImageURL:    req.ImageURL,
		UpdatedAt:   time.Now().UTC(),
	}
	return repo.UpdateMovie(ctx, id, update)
}

func DeleteMovie(ctx context.Context, repo database.MovieRepository, id string) error {
	return repo.DeleteMovie(ctx, id)
}

// FavoriteMovies returns the catalog entries whose IDs are in ids, in catalog
// order. Favorites pointing at deleted movies are skipped.
func FavoriteMovies(ctx context.Context, repo database.MovieRepository, ids []string) ([]*models.Movie, error) {
	if len(ids) == 0 {
		return []*models.Movie{}, nil
	}

	movies, err := repo.ListMovies(ctx)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	favorites := make([]*models.Movie, 0, len(ids))
	for _, m := range movies {
		if _, ok := wanted[m.ID]; ok {
			favorites = append(favorites, m)
		}
	}
	return favorites, nil
}

func trimMovieRequest(req *MovieRequest) {
	req.Name = strings.TrimSpace(req.Name)
	req.Director = strings.TrimSpace(req.Director)
	req.Genres = strings.TrimSpace(req.Genres)
	req.Actors = strings.TrimSpace(req.Actors)
	req.Released = strings.TrimSpace(req.Released)
	req.Description = strings.TrimSpace(req.Description)
	req.ImageURL = strings.TrimSpace(req.ImageURL)
}

func trimMovieUpdate(req *MovieUpdateRequest) {
	for _, field := range []*string{
		req.Name, req.Director, req.Genres, req.Actors,
		req.Released, req.Description, req.ImageURL,
	} {
		if field != nil {
			*field = strings.TrimSpace(*field)
		}
	}
}
