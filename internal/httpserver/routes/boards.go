package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkboard/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkboard/internal/httpserver/handlers"
)

func init() { Register(registerBoards) }

func registerBoards(r chi.Router, d deps.Deps) {
	r = api(r, d)
	r.Post("/api/boards", handlers.CreateBoard(d))
	r.Get("/api/boards/{boardID}", handlers.GetBoard(d))
	r.Delete("/api/boards/{boardID}", handlers.DeleteBoard(d))
	r.Post("/api/boards/{boardID}/reset", handlers.ResetBoard(d))
}
