package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkboard/internal/domain"
	"github.com/MrSnakeDoc/linkboard/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkboard/internal/logger"
	"github.com/MrSnakeDoc/linkboard/internal/session"
	"github.com/MrSnakeDoc/linkboard/internal/share"
)

// ShareCategory publishes a snapshot of one category. The link is in the
// sharedLink field of the returned board.
func ShareCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := pathParam(r, "category")
		mutate(d, w, r, http.StatusCreated, func(s *session.Session) error {
			link, err := s.ShareCategory(r.Context(), name)
			if err == nil {
				d.Logger.Info("category shared",
					logger.String("board", s.ID()),
					logger.String("share", link.ID))
			}
			return err
		})
	}
}

type sharedCategoryResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Emoji     *domain.Emoji     `json:"emoji"`
	IconURL   string            `json:"iconURL"`
	Bookmarks []domain.Bookmark `json:"bookmarks"`
	Views     int64             `json:"views"`
}

// SharedCategory is the read-only viewer of a shared snapshot.
func SharedCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "shareID")

		snap, err := d.Exporter.Resolve(r.Context(), id)
		switch {
		case errors.Is(err, share.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "Shared category not found or expired"})
			return
		case errors.Is(err, share.ErrCorrupt):
			d.Logger.Warn("corrupt shared category", logger.String("share", id), logger.Error(err))
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "Invalid shared category data"})
			return
		case err != nil:
			writeError(w, d.Logger, err, nil)
			return
		}

		resp := sharedCategoryResponse{
			ID:        id,
			Name:      snap.Name,
			Emoji:     snap.Emoji,
			IconURL:   domain.UnicodeEmoji(domain.DefaultCategoryEmoji).ImageURL(),
			Bookmarks: snap.Bookmarks,
		}
		if snap.Emoji != nil {
			resp.IconURL = snap.Emoji.ImageURL()
		}
		if resp.Bookmarks == nil {
			resp.Bookmarks = []domain.Bookmark{}
		}

		// a failed counter must not hide the snapshot
		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()
		if views, err := d.Exporter.Viewed(ctx, id); err != nil {
			d.Logger.Warn("failed to count shared view", logger.String("share", id), logger.Error(err))
		} else {
			resp.Views = views
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
