package models

// NewMovieResponse maps a stored movie to its wire form. The director and
// genre names come from the resolved relationships; a movie without one
// serializes the id and name as null.
func NewMovieResponse(m Movie) MovieResponse {
	resp := MovieResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Trailer:     m.Trailer,
		Year:        m.Year,
		Rating:      m.Rating,
		DirectorID:  m.DirectorID,
		GenreID:     m.GenreID,
	}
	if m.Director != nil {
		name := m.Director.Name
		resp.Director = &name
	}
	if m.Genre != nil {
		name := m.Genre.Name
		resp.Genre = &name
	}
	return resp
}

// NewMovieResponses maps a slice of movies, never returning nil so an empty
// listing encodes as [].
func NewMovieResponses(movies []Movie) []MovieResponse {
	out := make([]MovieResponse, 0, len(movies))
	for _, m := range movies {
		out = append(out, NewMovieResponse(m))
	}
	return out
}
