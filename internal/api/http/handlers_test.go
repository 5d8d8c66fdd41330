package http

import (
	"archive/tar"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/RetroShell/internal/apps/recyclebin"
	"github.com/GriffinCanCode/RetroShell/internal/domain/shell"
	"github.com/GriffinCanCode/RetroShell/internal/infrastructure/monitoring"
)

type testServer struct {
	router  *gin.Engine
	shell   *shell.Shell
	metrics *monitoring.Metrics
}

func setup(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sh := shell.New()
	metrics := monitoring.NewMetrics()
	router := gin.New()
	NewHandlers(sh, metrics, nil).Register(router)
	return &testServer{router: router, shell: sh, metrics: metrics}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestRootAndHealth(t *testing.T) {
	s := setup(t)

	w := s.do(t, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"online"`)

	w = s.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

func TestDesktopSnapshot(t *testing.T) {
	s := setup(t)

	w := s.do(t, http.MethodGet, "/api/desktop", "")
	require.Equal(t, http.StatusOK, w.Code)
	snap := decode[shell.Snapshot](t, w)
	assert.Len(t, snap.Icons, 6)
	assert.Empty(t, snap.Windows)
	assert.Len(t, snap.Taskbar.StartMenu.Entries, 4)
}

func TestOpenAndWindowLifecycle(t *testing.T) {
	s := setup(t)

	w := s.do(t, http.MethodPost, "/api/apps/ie/open", `{"source":"desktop"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[shell.Result](t, w).Applied)

	w = s.do(t, http.MethodPost, "/api/apps/notepad/open", "")
	require.Equal(t, http.StatusOK, w.Code)

	snap := s.shell.Snapshot()
	require.Len(t, snap.Windows, 2)
	assert.Equal(t, "Internet", snap.Windows[0].Title)

	w = s.do(t, http.MethodPost, "/api/windows/notepad/minimize", "")
	assert.True(t, decode[shell.Result](t, w).Applied)
	assert.Len(t, s.shell.Snapshot().Windows, 1)

	w = s.do(t, http.MethodPost, "/api/taskbar/notepad", "")
	assert.Equal(t, "restored", string(decode[shell.Result](t, w).Taskbar))

	w = s.do(t, http.MethodPut, "/api/windows/notepad/position", `{"x":30,"y":40}`)
	assert.True(t, decode[shell.Result](t, w).Applied)

	w = s.do(t, http.MethodPost, "/api/windows/notepad/maximize", "")
	assert.True(t, decode[shell.Result](t, w).Applied)

	w = s.do(t, http.MethodDelete, "/api/windows/notepad", "")
	assert.True(t, decode[shell.Result](t, w).Applied)

	w = s.do(t, http.MethodPost, "/api/windows/notepad/focus", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[shell.Result](t, w).Applied, "no-op still answers 200")
}

func TestOpenRejectsBadInput(t *testing.T) {
	s := setup(t)

	w := s.do(t, http.MethodPost, "/api/apps/notepad/open", `{"source":"taskbar"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/apps/notepad/open", `{"source":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/apps/NOT%20OK/open", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid intent")
}

func TestOpenAdHocIsBounded(t *testing.T) {
	s := setup(t)

	for i := range shell.DefaultMaxAdHocWindows {
		w := s.do(t, http.MethodPost, fmt.Sprintf("/api/apps/toy-%d/open", i), "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	w := s.do(t, http.MethodPost, "/api/apps/one-too-many/open", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "too many ad-hoc windows")
	assert.Equal(t, shell.DefaultMaxAdHocWindows, s.shell.Stats().Windows.Total)
}

func TestPositionRequiresCoordinates(t *testing.T) {
	s := setup(t)
	s.do(t, http.MethodPost, "/api/apps/notepad/open", "")

	w := s.do(t, http.MethodPut, "/api/windows/notepad/position", `{"x":30}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, "/api/windows/notepad/position", `{"x":0,"y":0}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStartMenuAndIcons(t *testing.T) {
	s := setup(t)

	s.do(t, http.MethodPost, "/api/start-menu/toggle", "")
	assert.True(t, s.shell.Snapshot().Taskbar.StartMenu.Open)
	s.do(t, http.MethodPost, "/api/start-menu/close", "")
	assert.False(t, s.shell.Snapshot().Taskbar.StartMenu.Open)

	w := s.do(t, http.MethodPut, "/api/icons/notepad", `{"x":500,"y":600}`)
	assert.True(t, decode[shell.Result](t, w).Applied)
	icon := s.shell.Snapshot().Icons[1]
	assert.Equal(t, 500, icon.X)
	assert.Equal(t, 600, icon.Y)
}

func TestDocumentsFlow(t *testing.T) {
	s := setup(t)

	w := s.do(t, http.MethodPost, "/api/documents", `{"name":" notes.txt ","content":"hello"}`)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[shell.Result](t, w)
	require.NotNil(t, res.Document)
	docID := string(res.Document.ID)
	assert.Equal(t, "notes.txt", res.Document.Name)

	s.do(t, http.MethodPost, "/api/documents", `{"name":"data.json","content":"{\"a\":1}"}`)

	w = s.do(t, http.MethodGet, "/api/documents?pattern=*.json", "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Documents []documentEntry `json:"documents"`
		Count     int             `json:"count"`
	}](t, w)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "application/json", list.Documents[0].Info.MIMEType)

	w = s.do(t, http.MethodGet, "/api/documents?pattern=[", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodDelete, "/api/documents/"+docID, "")
	assert.True(t, decode[shell.Result](t, w).Applied)

	w = s.do(t, http.MethodGet, "/api/recycle-bin", "")
	bin := decode[recyclebin.View](t, w)
	assert.Equal(t, "Files in Recycle Bin: 1", bin.Label)

	w = s.do(t, http.MethodPost, "/api/recycle-bin/"+docID+"/restore", "")
	assert.True(t, decode[shell.Result](t, w).Applied)

	s.do(t, http.MethodDelete, "/api/documents/"+docID, "")
	w = s.do(t, http.MethodDelete, "/api/recycle-bin", "")
	assert.Equal(t, 1, decode[shell.Result](t, w).Purged)

	w = s.do(t, http.MethodGet, "/api/recycle-bin", "")
	assert.Equal(t, recyclebin.EmptyMessage, decode[recyclebin.View](t, w).Empty)
}

func TestSaveValidation(t *testing.T) {
	s := setup(t)

	w := s.do(t, http.MethodPost, "/api/documents", `{"content":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/documents", `{"name":"a\u0007b","content":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/documents", `{"name":"   ","content":"x"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[shell.Result](t, w).Applied)
}

func TestExportDocuments(t *testing.T) {
	s := setup(t)
	s.do(t, http.MethodPost, "/api/documents", `{"name":"a.txt","content":"alpha"}`)

	w := s.do(t, http.MethodGet, "/api/documents/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/gzip", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Documents.tar.gz")

	zr, err := gzip.NewReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	tr := tar.NewReader(zr)
	hdr, err := tr.Next()
	require.NoError(t, err)
	assert.Equal(t, "Documents/a.txt", hdr.Name)
	body, err := io.ReadAll(tr)
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(body))

	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.ExportsTotal.WithLabelValues("gzip")))

	w = s.do(t, http.MethodGet, "/api/documents/export?compression=rar", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLeafActions(t *testing.T) {
	s := setup(t)
	s.do(t, http.MethodPost, "/api/apps/notepad/open", "")

	s.do(t, http.MethodPost, "/api/windows/notepad/leaf", `{"type":"rename","name":"memo.txt"}`)
	s.do(t, http.MethodPost, "/api/windows/notepad/leaf", `{"type":"edit","text":"remember"}`)
	w := s.do(t, http.MethodPost, "/api/windows/notepad/leaf", `{"type":"save"}`)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[shell.Result](t, w)
	require.NotNil(t, res.Document)
	assert.Equal(t, "memo.txt", res.Document.Name)

	w = s.do(t, http.MethodPost, "/api/windows/notepad/leaf", `{"type":"reveal"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/windows/ie/leaf", `{"type":"navigate","url":"example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[shell.Result](t, w).Applied, "window not open")
}

func TestDispatchRawIntent(t *testing.T) {
	s := setup(t)

	w := s.do(t, http.MethodPost, "/api/intents", `{"type":"open","kind":"minesweeper","source":"start_menu"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[shell.Result](t, w).Applied)

	w = s.do(t, http.MethodPost, "/api/intents", `{"type":"leaf","kind":"minesweeper","action":{"type":"flag","row":1,"col":2}}`)
	assert.True(t, decode[shell.Result](t, w).Applied)

	w = s.do(t, http.MethodPost, "/api/intents", `{"type":"format_c"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown intent")
}
