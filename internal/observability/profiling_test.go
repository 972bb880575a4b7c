package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/lft-board/internal/config"
	"github.com/riskibarqy/lft-board/internal/platform/logging"
)

func TestStartProfiling_Disabled(t *testing.T) {
	t.Parallel()

	p, err := StartProfiling(config.Config{}, logging.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.pprof != nil || p.profiler != nil {
		t.Fatalf("expected nothing to start")
	}
	if err := p.Shutdown(t.Context()); err != nil {
		t.Fatalf("expected clean shutdown, got %v", err)
	}
}

func TestPprofMux_ServesIndex(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	pprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
