package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"movie-catalog-service/internal/models"
)

// MovieStore is the storage the movie service reads from.
type MovieStore interface {
	ListMovies(ctx context.Context, params models.MovieListParams) ([]models.Movie, error)
	GetMovie(ctx context.Context, id int) (*models.Movie, error)
}

// MovieService handles business logic for movies.
type MovieService struct {
	repo     MovieStore
	redis    *redis.Client
	cacheTTL time.Duration
}

// NewMovieService creates a new MovieService. rdb may be nil, in which case
// every call goes to the store.
func NewMovieService(repo MovieStore, rdb *redis.Client, cacheTTL time.Duration) *MovieService {
	return &MovieService{
		repo:     repo,
		redis:    rdb,
		cacheTTL: cacheTTL,
	}
}

// ListMovies returns the serialized movies matching params.
func (s *MovieService) ListMovies(ctx context.Context, params models.MovieListParams) ([]models.MovieResponse, error) {
	cacheKey := params.CacheKey()

	var cached []models.MovieResponse
	if s.getFromCache(ctx, cacheKey, &cached) {
		return cached, nil
	}

	movies, err := s.repo.ListMovies(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	result := models.NewMovieResponses(movies)
	s.setCache(ctx, cacheKey, result)
	return result, nil
}

// GetMovie returns one serialized movie by id.
func (s *MovieService) GetMovie(ctx context.Context, id int) (*models.MovieResponse, error) {
	cacheKey := fmt.Sprintf("movie:detail:%d", id)

	var cached models.MovieResponse
	if s.getFromCache(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	movie, err := s.repo.GetMovie(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("movie %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}

	result := models.NewMovieResponse(*movie)
	s.setCache(ctx, cacheKey, result)
	return &result, nil
}

// InvalidateCache drops every cached movie listing and detail.
func (s *MovieService) InvalidateCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	for _, pattern := range []string{"movies:*", "movie:*"} {
		iter := s.redis.Scan(ctx, 0, pattern, 0).Iterator()
		for iter.Next(ctx) {
			s.redis.Del(ctx, iter.Val())
		}
		if err := iter.Err(); err != nil {
			slog.Error("failed to invalidate cache", "pattern", pattern, "error", err)
		}
	}
	slog.Debug("movie cache invalidated")
}

// ---- Redis Helpers ----

func (s *MovieService) getFromCache(ctx context.Context, key string, dst any) bool {
	if s.redis == nil {
		return false
	}
	cached, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(cached), dst); err != nil {
		return false
	}
	slog.Debug("cache hit", "key", key)
	return true
}

func (s *MovieService) setCache(ctx context.Context, key string, value any) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
		slog.Error("failed to set cache", "key", key, "error", err)
	}
}
