package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MrSnakeDoc/linkboard/internal/logger"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestRateLimit(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	h := RateLimit(RateLimitConfig{
		Burst:             2,
		RefillPerIPPerMin: 60,
		Now:               func() time.Time { return now },
	})(ok)

	call := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/shared/x", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 2; i++ {
		if rec := call("10.0.0.1:1234"); rec.Code != http.StatusNoContent {
			t.Fatalf("request %d: status = %d, want 204", i, rec.Code)
		}
	}

	rec := call("10.0.0.1:1234")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "1" {
		t.Errorf("Retry-After = %q, want 1", rec.Header().Get("Retry-After"))
	}

	// other clients have their own bucket
	if rec := call("10.0.0.2:1234"); rec.Code != http.StatusNoContent {
		t.Errorf("second client status = %d, want 204", rec.Code)
	}

	now = now.Add(time.Second)
	rec = call("10.0.0.1:1234")
	if rec.Code != http.StatusNoContent {
		t.Errorf("after refill status = %d, want 204", rec.Code)
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Errorf("X-RateLimit-Remaining = %q, want 0", rec.Header().Get("X-RateLimit-Remaining"))
	}
}

func TestRateLimit_Scope(t *testing.T) {
	h := RateLimit(RateLimitConfig{
		Burst:             1,
		RefillPerIPPerMin: 1,
		Scope:             func(r *http.Request) string { return r.URL.Query().Get("board") },
	})(ok)

	for _, board := range []string{"a", "b"} {
		req := httptest.NewRequest(http.MethodPost, "/share?board="+board, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Errorf("board %s: status = %d, want 204", board, rec.Code)
		}
	}
}

func TestAllowOnlyCIDRS(t *testing.T) {
	log := logger.New("error", false)

	tests := []struct {
		name    string
		allowed []string
		remote  string
		xff     string
		trust   bool
		want    int
	}{
		{"empty list passes", nil, "8.8.8.8:1", "", false, http.StatusNoContent},
		{"exact ip", []string{"127.0.0.1"}, "127.0.0.1:5000", "", false, http.StatusNoContent},
		{"cidr", []string{"10.0.0.0/8"}, "10.1.2.3:5000", "", false, http.StatusNoContent},
		{"rejected", []string{"10.0.0.0/8"}, "192.168.1.1:5000", "", false, http.StatusForbidden},
		{"proxy header trusted", []string{"10.0.0.0/8"}, "127.0.0.1:5000", "10.9.9.9", true, http.StatusNoContent},
		{"proxy header ignored", []string{"10.0.0.0/8"}, "127.0.0.1:5000", "10.9.9.9", false, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := AllowOnlyCIDRS(tt.allowed, tt.trust, log)(ok)
			req := httptest.NewRequest(http.MethodGet, "/infra", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestMatchHost(t *testing.T) {
	tests := []struct {
		host    string
		pattern string
		want    bool
	}{
		{"links.example.com", "links.example.com", true},
		{"links.example.com:8080", "links.example.com", true},
		{"links.example.com:8080", "links.example.com:9090", false},
		{"a.example.com", "*.example.com", true},
		{"example.com", "*.example.com", false},
		{"evil.com", "links.example.com", false},
	}

	for _, tt := range tests {
		if got := matchHost(tt.host, tt.pattern); got != tt.want {
			t.Errorf("matchHost(%q, %q) = %v, want %v", tt.host, tt.pattern, got, tt.want)
		}
	}
}

func TestEnforceHost(t *testing.T) {
	h := EnforceHost([]string{"Links.Example.com"}, logger.New("error", false))(ok)

	req := httptest.NewRequest(http.MethodGet, "/api/boards", nil)
	req.Host = "links.example.com"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("allowed host status = %d", rec.Code)
	}

	req.Host = "other.example.com"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("foreign host status = %d, want 403", rec.Code)
	}
}

func TestCORS_Preflight(t *testing.T) {
	h := CORS(nil)(ok)

	req := httptest.NewRequest(http.MethodOptions, "/api/boards", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}
