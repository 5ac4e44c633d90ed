package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"movie-catalog-service/internal/models"
)

type fakeMovieStore struct {
	movies []models.Movie
	err    error
	calls  int
}

func (f *fakeMovieStore) ListMovies(_ context.Context, params models.MovieListParams) ([]models.Movie, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	filter, ok := params.Filter()
	out := make([]models.Movie, 0)
	for _, m := range f.movies {
		if ok {
			ref := m.DirectorID
			if filter.Column == "genre_id" {
				ref = m.GenreID
			}
			if ref == nil || *ref != filter.Value {
				continue
			}
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMovieStore) GetMovie(_ context.Context, id int) (*models.Movie, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	for _, m := range f.movies {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, models.ErrNotFound
}

type fakeNamedStore struct {
	rows map[int]string
	next int
	err  error
}

func newFakeNamedStore() *fakeNamedStore {
	return &fakeNamedStore{rows: map[int]string{}, next: 1}
}

func (f *fakeNamedStore) List(context.Context) ([]models.NamedRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.NamedRecord, 0, len(f.rows))
	for id, name := range f.rows {
		out = append(out, models.NamedRecord{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeNamedStore) Create(_ context.Context, rec models.NamedRecord) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	id := rec.ID
	if id == 0 {
		id = f.next
	}
	if _, ok := f.rows[id]; ok {
		return 0, fmt.Errorf("%w: id already exists", models.ErrConflict)
	}
	f.rows[id] = rec.Name
	if id >= f.next {
		f.next = id + 1
	}
	return id, nil
}

func (f *fakeNamedStore) Update(_ context.Context, id int, rec models.NamedRecord) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.rows[id]; !ok {
		return models.ErrNotFound
	}
	if _, taken := f.rows[rec.ID]; taken && rec.ID != id {
		return models.ErrConflict
	}
	delete(f.rows, id)
	f.rows[rec.ID] = rec.Name
	return nil
}

func (f *fakeNamedStore) Delete(_ context.Context, id int) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.rows[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type countingInvalidator struct{ n int }

func (c *countingInvalidator) InvalidateCache(context.Context) { c.n++ }

var errStoreDown = errors.New("store down")
