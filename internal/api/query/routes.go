package query

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers query routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/query", h.Query)
	r.Post("/reset-context", h.ResetContext)
	r.Post("/generate-quiz", h.GenerateQuiz)
	r.Post("/youtube-search", h.SearchVideos)
	r.Get("/get-top-doubts", h.TopDoubts)
}
