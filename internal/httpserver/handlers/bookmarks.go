package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/linkboard/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkboard/internal/session"
)

type addBookmarkRequest struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

func AddBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addBookmarkRequest
		if err := decode(w, r, &req); err != nil {
			writeError(w, d.Logger, err, nil)
			return
		}
		mutate(d, w, r, http.StatusCreated, func(s *session.Session) error {
			return s.AddBookmark(req.Name, req.URL, req.Category)
		})
	}
}

func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := intParam(r, "index")
		if err != nil {
			writeError(w, d.Logger, err, nil)
			return
		}
		category := pathParam(r, "category")
		mutate(d, w, r, http.StatusOK, func(s *session.Session) error {
			return s.DeleteBookmark(category, index)
		})
	}
}

// RequestDeleteBookmark opens the confirmation dialog for one bookmark.
func RequestDeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := intParam(r, "index")
		if err != nil {
			writeError(w, d.Logger, err, nil)
			return
		}
		category := pathParam(r, "category")
		mutate(d, w, r, http.StatusOK, func(s *session.Session) error {
			_, err := s.RequestDeleteBookmark(category, index)
			return err
		})
	}
}
