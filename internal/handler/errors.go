package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"movie-catalog-service/internal/models"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler is the app-level fallback for errors returned by handlers or
// middleware, unknown routes and recovered panics.
func ErrorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		if code < fiber.StatusInternalServerError {
			message = e.Message
		}
	}
	if code >= fiber.StatusInternalServerError {
		slog.Error("unhandled error", "error", err, "status", code, "path", c.Path())
	}
	return c.Status(code).JSON(ErrorResponse{Error: message})
}

// writeError maps an error kind to its status code. Internal details are
// logged and never sent to the client.
func writeError(c fiber.Ctx, kind string, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: kind + " not found"})
	case errors.Is(err, models.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Error: kind + " id already exists"})
	}

	slog.Error("request failed", "kind", kind, "method", c.Method(), "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "internal server error"})
}
