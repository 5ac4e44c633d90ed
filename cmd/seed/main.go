// Command seed loads a JSON fixture of directors, genres and movies into the
// catalog database.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"movie-catalog-service/internal/config"
	"movie-catalog-service/internal/database"
	"movie-catalog-service/internal/models"
	"movie-catalog-service/internal/repository"
	"movie-catalog-service/internal/service"
)

// fixture is the on-disk seed format.
type fixture struct {
	Directors []models.Director `json:"directors"`
	Genres    []models.Genre    `json:"genres"`
	Movies    []fixtureMovie    `json:"movies"`
}

type fixtureMovie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Trailer     string  `json:"trailer"`
	Year        int     `json:"year"`
	Rating      float64 `json:"rating"`
	DirectorID  *int    `json:"director_id"`
	GenreID     *int    `json:"genre_id"`
}

func main() {
	file := flag.String("file", "docs/seed.json", "Path to the JSON fixture")
	reset := flag.Bool("reset", false, "Empty all tables before loading")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := run(context.Background(), *file, *reset); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, path string, reset bool) error {
	fx, err := readFixture(path)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := database.NewPostgres(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	movies := repository.NewMovieRepository(db)
	if reset {
		if err := movies.Truncate(ctx); err != nil {
			return err
		}
		slog.Info("tables emptied")
	}

	directors := repository.NewDirectorRepository(db)
	for _, d := range fx.Directors {
		if _, err := directors.Create(ctx, d); err != nil {
			return fmt.Errorf("director %q: %w", d.Name, err)
		}
	}
	genres := repository.NewGenreRepository(db)
	for _, g := range fx.Genres {
		if _, err := genres.Create(ctx, g); err != nil {
			return fmt.Errorf("genre %q: %w", g.Name, err)
		}
	}
	for _, m := range fx.Movies {
		if _, err := movies.CreateMovie(ctx, m.toModel()); err != nil {
			return fmt.Errorf("movie %q: %w", m.Title, err)
		}
	}

	dropMovieCache(ctx, cfg.Redis)

	slog.Info("seed completed",
		"directors", len(fx.Directors), "genres", len(fx.Genres), "movies", len(fx.Movies))
	return nil
}

// dropMovieCache clears cached movie listings so a running service serves
// the seeded rows. Without Redis there is nothing to clear.
func dropMovieCache(ctx context.Context, cfg config.RedisConfig) {
	rdb, err := database.NewRedis(ctx, cfg)
	if err != nil {
		slog.Warn("Redis unavailable, movie cache not cleared", "error", err)
		return
	}
	defer rdb.Close()

	service.NewMovieService(nil, rdb, 0).InvalidateCache(ctx)
}

func readFixture(path string) (*fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &fx, nil
}

func (m fixtureMovie) toModel() models.Movie {
	return models.Movie{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Trailer:     m.Trailer,
		Year:        m.Year,
		Rating:      m.Rating,
		DirectorID:  m.DirectorID,
		GenreID:     m.GenreID,
	}
}
