package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkboard/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkboard/internal/httpserver/handlers"
)

func init() { Register(registerCategories) }

func registerCategories(r chi.Router, d deps.Deps) {
	r = api(r, d)
	r.Post("/api/boards/{boardID}/categories", handlers.SubmitCategory(d))
	r.Put("/api/boards/{boardID}/categories/{category}", handlers.UpdateCategory(d))
	r.Delete("/api/boards/{boardID}/categories/{category}", handlers.DeleteCategory(d))
	r.Post("/api/boards/{boardID}/categories/{category}/edit", handlers.EditCategory(d))
	r.Post("/api/boards/{boardID}/categories/{category}/delete-request", handlers.RequestDeleteCategory(d))
	r.Post("/api/boards/{boardID}/delete-confirm", handlers.ConfirmDelete(d))
	r.Put("/api/boards/{boardID}/emoji", handlers.SelectEmoji(d))
	r.Post("/api/boards/{boardID}/order", handlers.ReorderCategories(d))
}
