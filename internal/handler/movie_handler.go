package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"movie-catalog-service/internal/models"
)

// MovieReader is what MovieHandler needs from the movie service.
type MovieReader interface {
	ListMovies(ctx context.Context, params models.MovieListParams) ([]models.MovieResponse, error)
	GetMovie(ctx context.Context, id int) (*models.MovieResponse, error)
}

// MovieHandler handles HTTP requests for movies.
type MovieHandler struct {
	svc MovieReader
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(svc MovieReader) *MovieHandler {
	return &MovieHandler{svc: svc}
}

// Health returns service health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *MovieHandler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "movie-catalog",
	})
}

// ListMovies returns movies, optionally narrowed by director or genre. When
// both are given only the director filter applies.
// @Summary List movies
// @Tags movies
// @Produce json
// @Param director_id query int false "Director ID"
// @Param genre_id query int false "Genre ID"
// @Success 200 {array} models.MovieResponse
// @Failure 500 {object} ErrorResponse
// @Router /movies/ [get]
func (h *MovieHandler) ListMovies(c fiber.Ctx) error {
	directorID, okDirector := readOptionalInt(c, "director_id")
	genreID, okGenre := readOptionalInt(c, "genre_id")

	// A value that is not an integer cannot match any key.
	if !okDirector || (directorID == nil && !okGenre) {
		return c.JSON([]models.MovieResponse{})
	}

	params := models.MovieListParams{DirectorID: directorID, GenreID: genreID}
	result, err := h.svc.ListMovies(c.Context(), params)
	if err != nil {
		return writeError(c, "movie", err)
	}
	return c.JSON(result)
}

// GetMovie returns a single movie.
// @Summary Get movie
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} models.MovieResponse
// @Failure 404 {object} ErrorResponse
// @Router /movies/{id} [get]
func (h *MovieHandler) GetMovie(c fiber.Ctx) error {
	id, err := readIDParam(c, "id")
	if err != nil {
		return writeError(c, "movie", err)
	}

	movie, err := h.svc.GetMovie(c.Context(), id)
	if err != nil {
		return writeError(c, "movie", err)
	}
	return c.JSON(movie)
}
