package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/linkboard/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkboard/internal/session"
)

type categoryRequest struct {
	Name    string `json:"name"`
	Editing string `json:"editing,omitempty"`
}

type emojiRequest struct {
	Emoji string `json:"emoji"`
}

type orderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// SubmitCategory creates a category, or renames the one being edited.
func SubmitCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if err := decode(w, r, &req); err != nil {
			writeError(w, d.Logger, err, nil)
			return
		}
		mutate(d, w, r, http.StatusOK, func(s *session.Session) error {
			return s.CreateOrUpdateCategory(req.Name, req.Editing)
		})
	}
}

func UpdateCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if err := decode(w, r, &req); err != nil {
			writeError(w, d.Logger, err, nil)
			return
		}
		oldName := pathParam(r, "category")
		mutate(d, w, r, http.StatusOK, func(s *session.Session) error {
			return s.UpdateCategory(oldName, req.Name)
		})
	}
}

func DeleteCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := pathParam(r, "category")
		mutate(d, w, r, http.StatusOK, func(s *session.Session) error {
			return s.DeleteCategory(name)
		})
	}
}

// EditCategory opens the category dialog on an existing category.
func EditCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := pathParam(r, "category")
		mutate(d, w, r, http.StatusOK, func(s *session.Session) error {
			return s.StartEditingCategory(name)
		})
	}
}

func RequestDeleteCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := pathParam(r, "category")
		mutate(d, w, r, http.StatusOK, func(s *session.Session) error {
			_, err := s.RequestDeleteCategory(name)
			return err
		})
	}
}

// ConfirmDelete carries out whatever the delete dialog asked about.
func ConfirmDelete(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mutate(d, w, r, http.StatusOK, func(s *session.Session) error {
			return s.ConfirmDelete()
		})
	}
}

// SelectEmoji sets the icon picked in the category dialog.
func SelectEmoji(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req emojiRequest
		if err := decode(w, r, &req); err != nil {
			writeError(w, d.Logger, err, nil)
			return
		}
		mutate(d, w, r, http.StatusOK, func(s *session.Session) error {
			s.SelectEmoji(req.Emoji)
			return nil
		})
	}
}

func ReorderCategories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req orderRequest
		if err := decode(w, r, &req); err != nil {
			writeError(w, d.Logger, err, nil)
			return
		}
		mutate(d, w, r, http.StatusOK, func(s *session.Session) error {
			return s.ReorderCategories(req.From, req.To)
		})
	}
}
