package service

import (
	"context"
	"fmt"
	"math"

	"movie-catalog-service/internal/models"
)

// NamedStore is the storage behind directors and genres.
type NamedStore interface {
	List(ctx context.Context) ([]models.NamedRecord, error)
	Create(ctx context.Context, rec models.NamedRecord) (int, error)
	Update(ctx context.Context, id int, rec models.NamedRecord) error
	Delete(ctx context.Context, id int) error
}

// CacheInvalidator drops cached data derived from directors and genres.
type CacheInvalidator interface {
	InvalidateCache(ctx context.Context)
}

// NamedService handles mutations of directors or genres. Movies embed
// director and genre names, so every successful write invalidates the movie
// cache.
type NamedService struct {
	kind  string
	repo  NamedStore
	cache CacheInvalidator
}

// NewNamedService creates a NamedService. kind names the resource in errors
// ("director", "genre").
func NewNamedService(kind string, repo NamedStore, cache CacheInvalidator) *NamedService {
	return &NamedService{kind: kind, repo: repo, cache: cache}
}

// Kind returns the resource name.
func (s *NamedService) Kind() string {
	return s.kind
}

// List returns all records.
func (s *NamedService) List(ctx context.Context) ([]models.NamedRecord, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list %ss: %w", s.kind, err)
	}
	return records, nil
}

// Create stores a new record and returns its id.
func (s *NamedService) Create(ctx context.Context, req models.CreateNamedRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	rec := models.NamedRecord{Name: *req.Name}
	if req.ID != nil {
		if !validKey(*req.ID) {
			return 0, models.Invalid("id must be a positive 32-bit integer")
		}
		rec.ID = *req.ID
	}

	id, err := s.repo.Create(ctx, rec)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", s.kind, err)
	}
	s.invalidate(ctx)
	return id, nil
}

// Update replaces every field of the record keyed by id.
func (s *NamedService) Update(ctx context.Context, id int, req models.UpdateNamedRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if !validKey(*req.ID) {
		return models.Invalid("id must be a positive 32-bit integer")
	}

	if err := s.repo.Update(ctx, id, models.NamedRecord{ID: *req.ID, Name: *req.Name}); err != nil {
		return fmt.Errorf("failed to update %s: %w", s.kind, err)
	}
	s.invalidate(ctx)
	return nil
}

// Delete removes the record keyed by id.
func (s *NamedService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete %s: %w", s.kind, err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *NamedService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidateCache(ctx)
	}
}

// validKey reports whether id fits the SERIAL key columns.
func validKey(id int) bool {
	return id > 0 && id <= math.MaxInt32
}
