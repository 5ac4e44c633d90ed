package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"movie-catalog-service/internal/models"
)

// MovieRepository handles database operations for movies.
type MovieRepository struct {
	db *sql.DB
}

// NewMovieRepository creates a new MovieRepository.
func NewMovieRepository(db *sql.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

const movieSelect = `
	SELECT m.id, COALESCE(m.title, ''), COALESCE(m.description, ''),
		COALESCE(m.trailer, ''), COALESCE(m.year, 0), COALESCE(m.rating, 0),
		m.director_id, d.name, m.genre_id, g.name
	FROM movies m
	LEFT JOIN directors d ON d.id = m.director_id
	LEFT JOIN genres g ON g.id = m.genre_id`

// ListMovies returns the movies matching params, ordered by id.
func (r *MovieRepository) ListMovies(ctx context.Context, params models.MovieListParams) ([]models.Movie, error) {
	query := movieSelect
	var args []any

	// Column comes from MovieListParams.Filter, never from the request.
	if f, ok := params.Filter(); ok {
		query += fmt.Sprintf(" WHERE m.%s = $1", f.Column)
		args = append(args, f.Value)
	}
	query += " ORDER BY m.id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list query failed: %w", err)
	}
	defer rows.Close()

	movies := make([]models.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

// GetMovie returns a movie by id.
func (r *MovieRepository) GetMovie(ctx context.Context, id int) (*models.Movie, error) {
	row := r.db.QueryRowContext(ctx, movieSelect+" WHERE m.id = $1", id)
	m, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("get movie %d: %w", id, err)
	}
	return &m, nil
}

// CreateMovie inserts a movie, keeping its id when one is set.
func (r *MovieRepository) CreateMovie(ctx context.Context, m models.Movie) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var id int
	if m.ID > 0 {
		err = tx.QueryRowContext(ctx, `
			INSERT INTO movies (id, title, description, trailer, year, rating, director_id, genre_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`, m.ID, m.Title, m.Description, m.Trailer, m.Year, m.Rating,
			nullableInt(m.DirectorID), nullableInt(m.GenreID)).Scan(&id)
	} else {
		err = tx.QueryRowContext(ctx, `
			INSERT INTO movies (title, description, trailer, year, rating, director_id, genre_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`, m.Title, m.Description, m.Trailer, m.Year, m.Rating,
			nullableInt(m.DirectorID), nullableInt(m.GenreID)).Scan(&id)
	}
	if err != nil {
		return 0, translate(err, "movie")
	}

	if m.ID > 0 {
		if err := syncSequence(ctx, tx, "movies"); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// Truncate empties all three tables and restarts their key sequences.
func (r *MovieRepository) Truncate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `TRUNCATE movies, directors, genres RESTART IDENTITY`)
	if err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMovie(s scanner) (models.Movie, error) {
	var (
		m                     models.Movie
		directorID, genreID   sql.NullInt64
		directorName, genreNm sql.NullString
	)
	err := s.Scan(
		&m.ID, &m.Title, &m.Description, &m.Trailer, &m.Year, &m.Rating,
		&directorID, &directorName, &genreID, &genreNm,
	)
	if err != nil {
		return m, err
	}

	if directorID.Valid {
		id := int(directorID.Int64)
		m.DirectorID = &id
		if directorName.Valid {
			m.Director = &models.Director{ID: id, Name: directorName.String}
		}
	}
	if genreID.Valid {
		id := int(genreID.Int64)
		m.GenreID = &id
		if genreNm.Valid {
			m.Genre = &models.Genre{ID: id, Name: genreNm.String}
		}
	}
	return m, nil
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
