package handler

import "github.com/gofiber/fiber/v3"

// Register mounts the catalog routes on r.
func Register(r fiber.Router, movies *MovieHandler, directors, genres *NamedHandler) {
	r.Get("/health", movies.Health)

	r.Get("/movies", movies.ListMovies)
	r.Get("/movies/:id", movies.GetMovie)

	for prefix, h := range map[string]*NamedHandler{"/directors": directors, "/genres": genres} {
		r.Get(prefix+"/:pk?", h.List)
		r.Post(prefix+"/:pk?", h.Create)
		r.Put(prefix+"/:pk", h.Update)
		r.Delete(prefix+"/:pk", h.Delete)
	}
}
