package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/RetroShell/internal/api/middleware"
	"github.com/GriffinCanCode/RetroShell/internal/domain/catalog"
	"github.com/GriffinCanCode/RetroShell/internal/infrastructure/config"
	"github.com/GriffinCanCode/RetroShell/internal/infrastructure/logging"
)

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	srv, err := newServer(cfg, logging.NewNop())
	require.NoError(t, err)
	return srv
}

func get(srv *Server, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRoutesAndMiddleware(t *testing.T) {
	srv := newTestServer(t, config.Default())

	w := get(srv, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)
	assert.True(t, strings.HasPrefix(w.Header().Get(middleware.RequestIDHeader), "req_"))

	req := httptest.NewRequest(http.MethodGet, "/api/desktop", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestGlobalRateLimitCapsAllClients(t *testing.T) {
	cfg := config.Default()
	cfg.RateLimit.GlobalRequestsPerSecond = 1
	cfg.RateLimit.GlobalBurst = 1
	srv := newTestServer(t, cfg)

	codes := make([]int, 0, 2)
	for _, addr := range []string{"10.0.0.1:1000", "10.0.0.2:1000"} {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestGlobalRateLimitOffByDefault(t *testing.T) {
	srv := newTestServer(t, config.Default())
	for i := range 5 {
		w := get(srv, "/health")
		assert.Equal(t, http.StatusOK, w.Code, "request %d", i)
	}
}

func TestMetricsReflectShell(t *testing.T) {
	srv := newTestServer(t, config.Default())

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/apps/notepad/open", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := get(srv, "/metrics").Body.String()
	assert.Contains(t, body, "retroshell_shell_windows_open 1")
	assert.Contains(t, body, `retroshell_intents_total{outcome="applied",type="open"} 1`)
	assert.Contains(t, body, "retroshell_http_requests_total")
	assert.Contains(t, body, "go_goroutines")
}

func TestLayoutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[icons]]
kind = "notepad"
x = 5
y = 6
`), 0o600))

	cfg := config.Default()
	cfg.Desktop.LayoutFile = path
	srv := newTestServer(t, cfg)

	snap := srv.Shell().Snapshot()
	require.Len(t, snap.Icons, 1)
	assert.Equal(t, catalog.Kind("notepad"), snap.Icons[0].Kind)
	assert.Equal(t, 5, snap.Icons[0].X)
}

func TestBadLayoutFile(t *testing.T) {
	cfg := config.Default()
	cfg.Desktop.LayoutFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := newServer(cfg, logging.NewNop())
	assert.ErrorContains(t, err, "failed to load desktop layout")
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = "0"
	srv := newTestServer(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.NoError(t, srv.Close())
}
