package handlers

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/linkboard/internal/domain"
	"github.com/MrSnakeDoc/linkboard/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkboard/internal/logger"
)

type searchResponse struct {
	Query string       `json:"query"`
	Hits  []domain.Hit `json:"hits"`
}

// Search ranks the bookmarks of a board against ?q=.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := d.Boards.Open(r.Context(), boardID(r))
		if err != nil {
			writeError(w, d.Logger, err, nil)
			return
		}

		query := strings.TrimSpace(r.URL.Query().Get("q"))
		hits := sess.Search(query)
		if hits == nil {
			hits = []domain.Hit{}
		}
		writeJSON(w, http.StatusOK, searchResponse{Query: query, Hits: hits})
	}
}

// Open redirects to the best bookmark for ?q=.
func Open(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := boardID(r)
		query := strings.TrimSpace(r.URL.Query().Get("q"))

		url, err := d.Boards.Resolve(r.Context(), id, query)
		if err != nil {
			d.Logger.Debug("open query unresolved",
				logger.String("board", id),
				logger.String("query", query),
				logger.Error(err))
			writeError(w, d.Logger, err, nil)
			return
		}

		d.Logger.Info("resolved bookmark",
			logger.String("board", id),
			logger.String("query", query),
			logger.String("url", url))
		http.Redirect(w, r, url, http.StatusFound)
	}
}
