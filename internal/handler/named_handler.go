package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"movie-catalog-service/internal/models"
)

// NamedManager is what NamedHandler needs from the director or genre service.
type NamedManager interface {
	Kind() string
	List(ctx context.Context) ([]models.NamedRecord, error)
	Create(ctx context.Context, req models.CreateNamedRequest) (int, error)
	Update(ctx context.Context, id int, req models.UpdateNamedRequest) error
	Delete(ctx context.Context, id int) error
}

// NamedHandler serves the /directors and /genres resources.
type NamedHandler struct {
	svc NamedManager
}

// NewNamedHandler creates a new NamedHandler.
func NewNamedHandler(svc NamedManager) *NamedHandler {
	return &NamedHandler{svc: svc}
}

// List returns every record. The path key, if any, is ignored.
// @Summary List directors or genres
// @Tags directors,genres
// @Produce json
// @Param pk path int false "Ignored"
// @Success 200 {array} models.NamedRecord
// @Failure 500 {object} ErrorResponse
// @Router /directors/{pk} [get]
// @Router /genres/{pk} [get]
func (h *NamedHandler) List(c fiber.Ctx) error {
	records, err := h.svc.List(c.Context())
	if err != nil {
		return writeError(c, h.svc.Kind(), err)
	}
	return c.JSON(records)
}

// Create stores the record in the body. The path key is ignored; the body's
// id, if present, becomes the key.
// @Summary Create director or genre
// @Tags directors,genres
// @Accept json
// @Produce plain
// @Param pk path int false "Ignored"
// @Param body body models.CreateNamedRequest true "Record"
// @Success 200 {string} string "Ok"
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /directors/{pk} [post]
// @Router /genres/{pk} [post]
func (h *NamedHandler) Create(c fiber.Ctx) error {
	var req models.CreateNamedRequest
	if err := readJSON(c, &req); err != nil {
		return writeError(c, h.svc.Kind(), err)
	}

	if _, err := h.svc.Create(c.Context(), req); err != nil {
		return writeError(c, h.svc.Kind(), err)
	}
	return c.SendString("Ok")
}

// Update replaces the record keyed by the path with the body.
// @Summary Replace director or genre
// @Tags directors,genres
// @Accept json
// @Produce plain
// @Param pk path int true "Record ID"
// @Param body body models.UpdateNamedRequest true "Record"
// @Success 200 {string} string "Ok"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /directors/{pk} [put]
// @Router /genres/{pk} [put]
func (h *NamedHandler) Update(c fiber.Ctx) error {
	id, err := readIDParam(c, "pk")
	if err != nil {
		return writeError(c, h.svc.Kind(), err)
	}

	var req models.UpdateNamedRequest
	if err := readJSON(c, &req); err != nil {
		return writeError(c, h.svc.Kind(), err)
	}

	if err := h.svc.Update(c.Context(), id, req); err != nil {
		return writeError(c, h.svc.Kind(), err)
	}
	return c.SendString("Ok")
}

// Delete removes the record keyed by the path.
// @Summary Delete director or genre
// @Tags directors,genres
// @Produce plain
// @Param pk path int true "Record ID"
// @Success 200 {string} string "Ok"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /directors/{pk} [delete]
// @Router /genres/{pk} [delete]
func (h *NamedHandler) Delete(c fiber.Ctx) error {
	id, err := readIDParam(c, "pk")
	if err != nil {
		return writeError(c, h.svc.Kind(), err)
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return writeError(c, h.svc.Kind(), err)
	}
	return c.SendString("Ok")
}
