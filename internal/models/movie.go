package models

import "fmt"

// Movie represents a movie stored in our database, with its director and
// genre resolved when the row was read.
type Movie struct {
	ID          int
	Title       string
	Description string
	Trailer     string
	Year        int
	Rating      float64
	DirectorID  *int
	GenreID     *int
	Director    *Director
	Genre       *Genre
}

// MovieResponse is the response shape for a movie.
type MovieResponse struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Trailer     string  `json:"trailer"`
	Year        int     `json:"year"`
	Rating      float64 `json:"rating"`
	DirectorID  *int    `json:"director_id"`
	GenreID     *int    `json:"genre_id"`
	Genre       *string `json:"genre"`
	Director    *string `json:"director"`
}

// MovieListParams holds query parameters for movie listing.
type MovieListParams struct {
	DirectorID *int
	GenreID    *int
}

// MovieFilter is the single column condition a listing is narrowed by.
type MovieFilter struct {
	Column string
	Value  int
}

// Filter picks the condition applied to a listing. When both director and
// genre are supplied only the director condition is kept; callers rely on
// that to get the same result as a director-only query.
func (p MovieListParams) Filter() (MovieFilter, bool) {
	switch {
	case p.DirectorID != nil:
		return MovieFilter{Column: "director_id", Value: *p.DirectorID}, true
	case p.GenreID != nil:
		return MovieFilter{Column: "genre_id", Value: *p.GenreID}, true
	}
	return MovieFilter{}, false
}

// CacheKey identifies the listing in the movie cache.
func (p MovieListParams) CacheKey() string {
	f, ok := p.Filter()
	if !ok {
		return "movies:list:all"
	}
	return fmt.Sprintf("movies:list:%s:%d", f.Column, f.Value)
}
