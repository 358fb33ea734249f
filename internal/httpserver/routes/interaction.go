package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkboard/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkboard/internal/httpserver/handlers"
)

func init() { Register(registerInteraction) }

func registerInteraction(r chi.Router, d deps.Deps) {
	r = api(r, d)
	r.Post("/api/boards/{boardID}/drag/{action}", handlers.Drag(d))
	r.Post("/api/boards/{boardID}/modals/{modal}/{action}", handlers.Modal(d))
}
