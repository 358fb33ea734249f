package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkboard/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkboard/internal/httpserver/handlers"
)

func init() { Register(registerSearch) }

func registerSearch(r chi.Router, d deps.Deps) {
	r = api(r, d)
	r.Get("/api/boards/{boardID}/search", handlers.Search(d))
	r.Get("/api/boards/{boardID}/open", handlers.Open(d))
}
