package routes

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkboard/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkboard/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/linkboard/internal/httpserver/mw"
	"github.com/MrSnakeDoc/linkboard/internal/share"
)

func init() { Register(registerShare) }

func registerShare(r chi.Router, d deps.Deps) {
	limit := func(scope func(*http.Request) string) func(http.Handler) http.Handler {
		return mw.RateLimit(mw.RateLimitConfig{
			Burst:             d.ShareRate.Burst,
			RefillPerIPPerMin: d.ShareRate.PerMinute,
			MaxEntries:        10_000,
			TrustProxy:        d.TrustProxy,
			Scope:             scope,
		})
	}

	api(r, d).
		With(limit(func(req *http.Request) string { return chi.URLParam(req, "boardID") })).
		Post("/api/boards/{boardID}/categories/{category}/share", handlers.ShareCategory(d))

	prefix := d.SharePath
	if prefix == "" {
		prefix = share.DefaultPathPrefix
	}
	r.With(limit(nil)).Get(strings.TrimSuffix(prefix, "/")+"/{shareID}", handlers.SharedCategory(d))
}
