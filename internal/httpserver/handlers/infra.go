package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/linkboard/internal/httpserver/deps"
)

type componentStatus struct {
	OK         bool   `json:"ok"`
	Count      *int   `json:"count,omitempty"`
	Source     string `json:"source,omitempty"`
	Mode       string `json:"mode,omitempty"`
	Impact     string `json:"impact,omitempty"`
	Error      string `json:"error,omitempty"`
	SharedSeen *int   `json:"shared_viewed,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		live := d.Boards.Index().Count()
		seedCategories := d.Template.Get().CategoryCount()

		seedStatus := componentStatus{OK: true, Count: &seedCategories, Source: d.SeedFile, Mode: "file"}
		if d.SeedFile == "" {
			seedStatus.Mode = "empty-boards"
		}

		components := map[string]componentStatus{
			"sessions": {OK: true, Count: &live},
			"seed":     seedStatus,
			"redis":    checkRedis(r.Context(), d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Status:     overallStatus(components),
			Components: components,
		})
	}
}

// overallStatus is "ok" unless redis is down, since boards cannot be saved
// or shared without it.
func overallStatus(components map[string]componentStatus) string {
	if redis, exists := components["redis"]; exists && !redis.OK {
		return "degraded"
	}
	return "ok"
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.Store == nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "boards-not-persisted",
			Error:  "store not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "boards-not-persisted",
			Error:  "timeout",
		}
	}

	status := componentStatus{OK: true, Mode: "optimal"}
	if stats, err := d.Store.GetUsageStats(ctx); err == nil {
		n := len(stats)
		status.SharedSeen = &n
	}
	return status
}
