package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkboard/internal/feedback"
	"github.com/MrSnakeDoc/linkboard/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkboard/internal/session"
)

type dragRequest struct {
	Index int `json:"index"`
}

// Drag drives the category drag gesture: start, over, end or cancel.
func Drag(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		action := chi.URLParam(r, "action")

		var req dragRequest
		if action == "start" || action == "over" {
			if err := decode(w, r, &req); err != nil {
				writeError(w, d.Logger, err, nil)
				return
			}
		}

		var op func(*session.Session) error
		switch action {
		case "start":
			op = func(s *session.Session) error { return s.StartDrag(req.Index) }
		case "over":
			op = func(s *session.Session) error { s.DragOver(req.Index); return nil }
		case "end":
			op = func(s *session.Session) error { return s.EndDrag() }
		case "cancel":
			op = func(s *session.Session) error { s.CancelDrag(); return nil }
		default:
			writeError(w, d.Logger, fmt.Errorf("%w: unknown drag action %q", errBadRequest, action), nil)
			return
		}
		mutate(d, w, r, http.StatusOK, op)
	}
}

// Modal opens or closes one dialog.
func Modal(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := feedback.ParseModal(chi.URLParam(r, "modal"))
		if err != nil {
			writeError(w, d.Logger, fmt.Errorf("%w: %v", errBadRequest, err), nil)
			return
		}

		action := chi.URLParam(r, "action")
		if action != "open" && action != "close" {
			writeError(w, d.Logger, fmt.Errorf("%w: unknown modal action %q", errBadRequest, action), nil)
			return
		}

		mutate(d, w, r, http.StatusOK, func(s *session.Session) error {
			if action == "open" {
				s.OpenModal(m)
			} else {
				s.CloseModal(m)
			}
			return nil
		})
	}
}
