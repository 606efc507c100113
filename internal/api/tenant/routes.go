package tenant

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers tenant routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/systems", h.GetSystems)
}
