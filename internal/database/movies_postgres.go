package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/giannis84/movie-hub/internal/models"
	"github.com/lib/pq"
)

var ErrAlreadyExists = errors.New("movie already exists")

const movieColumns = `id, name, director, genres, actors, released, description, imdb_rating, image_url, user_id, created_at, updated_at`

// PostgresMovieRepository implements MovieRepository using PostgreSQL.
type PostgresMovieRepository struct {
	db *sql.DB
}

// NewPostgresMovieRepository creates a new PostgresMovieRepository backed by the given *sql.DB.
func NewPostgresMovieRepository(db *sql.DB) *PostgresMovieRepository {
	return &PostgresMovieRepository{db: db}
}

func (r *PostgresMovieRepository) ListMovies(ctx context.Context) ([]*models.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying movies: %w", err)
	}
	defer rows.Close()

	movies := []*models.Movie{}
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating movies: %w", err)
	}
	return movies, nil
}

func (r *PostgresMovieRepository) GetMovie(ctx context.Context, id string) (*models.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	movie, err := scanMovie(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return movie, nil
}

func (r *PostgresMovieRepository) CreateMovie(ctx context.Context, movie *models.Movie) error {
	query := `INSERT INTO movies (` + movieColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	var updatedAt sql.NullTime
	if movie.UpdatedAt != nil {
		updatedAt = sql.NullTime{Time: *movie.UpdatedAt, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		movie.ID, movie.Name, movie.Director, movie.Genres, movie.Actors,
		movie.Released, movie.Description, movie.IMDbRating, movie.ImageURL,
		movie.UserID, movie.CreatedAt, updatedAt,
	)
	if err != nil {
		// Check for unique-violation (PG error code 23505)
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("inserting movie: %w", err)
	}
	return nil
}

func (r *PostgresMovieRepository) UpdateMovie(ctx context.Context, id string, update *models.MovieUpdate) error {
	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Name != nil {
		add("name", *update.Name)
	}
	if update.Director != nil {
		add("director", *update.Director)
	}
	if update.Genres != nil {
		add("genres", *update.Genres)
	}
	if update.Actors != nil {
		add("actors", *update.Actors)
	}
	if update.Released != nil {
		add("released", *update.Released)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.IMDbRating != nil {
		add("imdb_rating", *update.IMDbRating)
	}
	if update.ImageURL != nil {
		add("image_url", *update.ImageURL)
	}
	add("updated_at", update.UpdatedAt)

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE movies SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating movie: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresMovieRepository) DeleteMovie(ctx context.Context, id string) error {
	const query = `DELETE FROM movies WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting movie: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanMovie scans a single row from the movies table into a Movie.
func scanMovie(row rowScanner) (*models.Movie, error) {
	var movie models.Movie
	var updatedAt sql.NullTime

	err := row.Scan(
		&movie.ID, &movie.Name, &movie.Director, &movie.Genres, &movie.Actors,
		&movie.Released, &movie.Description, &movie.IMDbRating, &movie.ImageURL,
		&movie.UserID, &movie.CreatedAt, &updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning movie row: %w", err)
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		movie.UpdatedAt = &t
	}
	return &movie, nil
}

// isUniqueViolation checks if a PostgreSQL error is a unique constraint violation (23505).
func isUniqueViolation(err error) bool {
	var pge *pq.Error
	if errors.As(err, &pge) {
		return pge.Code == "23505"
	}
	return false
}
