package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/linkboard/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkboard/internal/logger"
	"github.com/MrSnakeDoc/linkboard/internal/session"
)

// CreateBoard starts a board from the seed template.
func CreateBoard(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := d.Boards.Create(r.Context())
		if err != nil {
			writeError(w, d.Logger, err, nil)
			return
		}
		w.Header().Set("Location", "/api/boards/"+sess.ID())
		writeJSON(w, http.StatusCreated, sess.View())
	}
}

func GetBoard(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := d.Boards.Open(r.Context(), boardID(r))
		if err != nil {
			writeError(w, d.Logger, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, sess.View())
	}
}

func DeleteBoard(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Boards.Delete(r.Context(), boardID(r)); err != nil {
			writeError(w, d.Logger, err, nil)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ResetBoard replaces the board content with the current seed template.
func ResetBoard(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mutate(d, w, r, http.StatusOK, func(s *session.Session) error {
			d.Logger.Info("board reset requested", logger.String("board", s.ID()))
			return s.Replace(d.Template.Get())
		})
	}
}
