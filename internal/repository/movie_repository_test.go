package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-catalog-service/internal/models"
)

var movieColumns = []string{
	"id", "title", "description", "trailer", "year", "rating",
	"director_id", "director_name", "genre_id", "genre_name",
}

func intPtr(v int) *int { return &v }

func TestListMoviesNoFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(movieColumns).
		AddRow(1, "Heat", "LA crews", "yt/heat", 1995, 8.3, 4, "Michael Mann", 9, "Crime").
		AddRow(2, "Orphan", "", "", 0, 0.0, nil, nil, nil, nil)
	mock.ExpectQuery(`FROM movies m .*ORDER BY m.id$`).WillReturnRows(rows)

	movies, err := NewMovieRepository(db).ListMovies(context.Background(), models.MovieListParams{})
	require.NoError(t, err)
	require.Len(t, movies, 2)

	assert.Equal(t, "Heat", movies[0].Title)
	require.NotNil(t, movies[0].Director)
	assert.Equal(t, "Michael Mann", movies[0].Director.Name)
	assert.Equal(t, 9, *movies[0].GenreID)
	assert.Equal(t, "Crime", movies[0].Genre.Name)

	assert.Nil(t, movies[1].DirectorID)
	assert.Nil(t, movies[1].Director)
	assert.Nil(t, movies[1].Genre)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMoviesFilterSelection(t *testing.T) {
	tests := []struct {
		name    string
		params  models.MovieListParams
		pattern string
		arg     int
	}{
		{"director", models.MovieListParams{DirectorID: intPtr(4)}, `WHERE m.director_id = \$1 ORDER BY m.id`, 4},
		{"genre", models.MovieListParams{GenreID: intPtr(9)}, `WHERE m.genre_id = \$1 ORDER BY m.id`, 9},
		{"both", models.MovieListParams{DirectorID: intPtr(4), GenreID: intPtr(9)}, `WHERE m.director_id = \$1 ORDER BY m.id`, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectQuery(tt.pattern).WithArgs(tt.arg).WillReturnRows(sqlmock.NewRows(movieColumns))

			movies, err := NewMovieRepository(db).ListMovies(context.Background(), tt.params)
			require.NoError(t, err)
			assert.NotNil(t, movies)
			assert.Empty(t, movies)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestListMoviesQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM movies`).WillReturnError(errors.New("connection refused"))

	_, err = NewMovieRepository(db).ListMovies(context.Background(), models.MovieListParams{})
	assert.ErrorContains(t, err, "connection refused")
}

func TestGetMovie(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`WHERE m.id = \$1`).WithArgs(1).
		WillReturnRows(sqlmock.NewRows(movieColumns).
			AddRow(1, "Heat", "", "", 1995, 8.3, 4, "Michael Mann", 9, "Crime"))
	mock.ExpectQuery(`WHERE m.id = \$1`).WithArgs(99).
		WillReturnRows(sqlmock.NewRows(movieColumns))

	repo := NewMovieRepository(db)
	m, err := repo.GetMovie(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1995, m.Year)

	_, err = repo.GetMovie(context.Background(), 99)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMovieWithExplicitID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO movies \(id, title`).
		WithArgs(7, "Heat", "", "", 1995, 8.3, 4, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec(`SELECT setval\(pg_get_serial_sequence\('movies', 'id'\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	id, err := NewMovieRepository(db).CreateMovie(context.Background(), models.Movie{
		ID: 7, Title: "Heat", Year: 1995, Rating: 8.3, DirectorID: intPtr(4),
	})
	require.NoError(t, err)
	assert.Equal(t, 7, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMovieMissingReference(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO movies \(title`).
		WillReturnError(&pq.Error{Code: foreignKeyViolation})
	mock.ExpectRollback()

	_, err = NewMovieRepository(db).CreateMovie(context.Background(), models.Movie{
		Title: "Heat", GenreID: intPtr(404),
	})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTruncate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`TRUNCATE movies, directors, genres RESTART IDENTITY`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, NewMovieRepository(db).Truncate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
