package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"movie-catalog-service/internal/config"
)

// NewPostgres creates a new PostgreSQL connection pool and creates the
// schema if it does not exist yet.
func NewPostgres(ctx context.Context, cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxIdleTime(15 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("connected to PostgreSQL", "db", cfg.DBName)

	if err := CreateSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}

// schema lists the statements run at startup. Each is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS directors (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255)
	)`,
	`CREATE TABLE IF NOT EXISTS genres (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255)
	)`,
	`CREATE TABLE IF NOT EXISTS movies (
		id SERIAL PRIMARY KEY,
		title VARCHAR(255),
		description VARCHAR(255),
		trailer VARCHAR(255),
		year INTEGER,
		rating DOUBLE PRECISION,
		genre_id INTEGER REFERENCES genres(id) ON UPDATE CASCADE ON DELETE SET NULL,
		director_id INTEGER REFERENCES directors(id) ON UPDATE CASCADE ON DELETE SET NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_movies_director_id ON movies(director_id)`,
	`CREATE INDEX IF NOT EXISTS idx_movies_genre_id ON movies(genre_id)`,
}

// CreateSchema creates the movies, directors and genres tables.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w\nSQL: %s", err, stmt)
		}
	}

	slog.Info("database schema ready")
	return nil
}
