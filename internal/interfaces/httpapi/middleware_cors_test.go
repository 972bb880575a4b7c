package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		allowed     []string
		method      string
		origin      string
		preflight   bool
		wantStatus  int
		wantOrigin  string
		wantReached bool
	}{
		{
			name:        "configured origin",
			allowed:     []string{"https://lft-board.example.app/"},
			method:      http.MethodGet,
			origin:      "https://lft-board.example.app",
			wantStatus:  http.StatusOK,
			wantOrigin:  "https://lft-board.example.app",
			wantReached: true,
		},
		{
			name:       "wildcard preflight",
			allowed:    []string{"*"},
			method:     http.MethodOptions,
			origin:     "https://lft-board.example.app",
			preflight:  true,
			wantStatus: http.StatusNoContent,
			wantOrigin: "*",
		},
		{
			name:        "unconfigured origin",
			allowed:     []string{"https://allowed.example.com"},
			method:      http.MethodGet,
			origin:      "https://not-allowed.example.com",
			wantStatus:  http.StatusOK,
			wantReached: true,
		},
		{
			name:        "plain options is not a preflight",
			allowed:     []string{"*"},
			method:      http.MethodOptions,
			origin:      "https://lft-board.example.app",
			wantStatus:  http.StatusOK,
			wantOrigin:  "*",
			wantReached: true,
		},
		{
			name:        "no origin header",
			allowed:     []string{"*"},
			method:      http.MethodGet,
			wantStatus:  http.StatusOK,
			wantReached: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			reached := false
			handler := CORS(tc.allowed, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				reached = true
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(tc.method, "/v1/board", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if tc.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status=%d want=%d", rec.Code, tc.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tc.wantOrigin {
				t.Fatalf("Access-Control-Allow-Origin=%q want=%q", got, tc.wantOrigin)
			}
			if reached != tc.wantReached {
				t.Fatalf("reached=%v want=%v", reached, tc.wantReached)
			}
		})
	}
}
