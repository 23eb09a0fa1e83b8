package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthz(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"ok", nil, http.StatusOK},
		{"db down", errors.New("connection refused"), http.StatusServiceUnavailable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := Healthz(func(context.Context) error { return tc.err })
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			if rec.Code != tc.want {
				t.Errorf("status=%d want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	tests := []struct {
		name       string
		origins    []string
		origin     string
		method     string
		wantAllow  string
		wantStatus int
	}{
		{"wildcard", nil, "http://a.example", http.MethodGet, "*", http.StatusTeapot},
		{"listed", []string{"http://a.example"}, "http://a.example", http.MethodGet, "http://a.example", http.StatusTeapot},
		{"not listed", []string{"http://a.example"}, "http://b.example", http.MethodGet, "", http.StatusTeapot},
		{"preflight", nil, "http://a.example", http.MethodOptions, "*", http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/x", nil)
			req.Header.Set("Origin", tc.origin)
			rec := httptest.NewRecorder()
			CORS(tc.origins, next).ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tc.wantAllow {
				t.Errorf("allow-origin=%q want %q", got, tc.wantAllow)
			}
			if rec.Code != tc.wantStatus {
				t.Errorf("status=%d want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}
