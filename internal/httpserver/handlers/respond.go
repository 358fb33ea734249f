package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkboard/internal/board"
	"github.com/MrSnakeDoc/linkboard/internal/domain"
	"github.com/MrSnakeDoc/linkboard/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkboard/internal/logger"
	"github.com/MrSnakeDoc/linkboard/internal/session"
	"github.com/MrSnakeDoc/linkboard/internal/share"
)

const maxBodyBytes = 64 << 10

var errBadRequest = errors.New("bad request")

type errorResponse struct {
	Error  string        `json:"error"`
	Fields []string      `json:"fields,omitempty"`
	Board  *session.View `json:"board,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusOf maps an error to its HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case domain.IsValidation(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrBoardNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, share.ErrNotFound),
		errors.Is(err, board.ErrNoMatch):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrIndexOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNothingToDelete):
		return http.StatusConflict
	case errors.Is(err, session.ErrSharingDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError sends the error body. view, when set, carries the toast and
// dialogs the failure raised.
func writeError(w http.ResponseWriter, log logger.Logger, err error, view *session.View) {
	status := statusOf(err)
	resp := errorResponse{Error: domain.Message(err), Board: view}

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		resp.Fields = verr.Fields
	case errors.Is(err, errBadRequest):
		resp.Error = err.Error()
	case errors.Is(err, board.ErrNoMatch):
		resp.Error = "No bookmark matches."
	case status == http.StatusInternalServerError:
		log.Error("request failed", logger.Error(err))
		if view != nil && view.Toast.Show {
			resp.Error = view.Toast.Message
		}
	}

	writeJSON(w, status, resp)
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	return nil
}

func boardID(r *http.Request) string {
	return chi.URLParam(r, "boardID")
}

// pathParam returns the decoded route parameter key.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func intParam(r *http.Request, key string) (int, error) {
	raw := chi.URLParam(r, key)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", errBadRequest, key, raw)
	}
	return n, nil
}

// mutate runs fn on the board of the request and answers with the board
// view, or with the error and the view it left behind.
func mutate(d deps.Deps, w http.ResponseWriter, r *http.Request, status int, fn func(*session.Session) error) {
	var view *session.View
	err := d.Boards.Do(r.Context(), boardID(r), func(s *session.Session) error {
		err := fn(s)
		v := s.View()
		view = &v
		return err
	})
	if err != nil {
		writeError(w, d.Logger, err, view)
		return
	}
	writeJSON(w, status, view)
}

// NotFound answers unknown routes in JSON.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: http.StatusText(http.StatusNotFound)})
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: http.StatusText(http.StatusMethodNotAllowed)})
}
