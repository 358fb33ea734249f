package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkboard/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkboard/internal/httpserver/handlers"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r = api(r, d)
	r.Post("/api/boards/{boardID}/bookmarks", handlers.AddBookmark(d))
	r.Delete("/api/boards/{boardID}/categories/{category}/bookmarks/{index}", handlers.DeleteBookmark(d))
	r.Post("/api/boards/{boardID}/categories/{category}/bookmarks/{index}/delete-request", handlers.RequestDeleteBookmark(d))
}
