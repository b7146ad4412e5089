package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the status and arithmetic endpoints at the root of
// the given router.
func RegisterRoutes(r chi.Router) {
	r.Get("/", Root)
	r.Get("/add", Add)
	r.Get("/subtract", Subtract)
}
