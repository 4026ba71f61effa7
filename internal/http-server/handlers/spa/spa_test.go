package spa

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotBooker/internal/lib/logger/handlers/slogdiscard"
)

func staticDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>index</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "script.js"), []byte("console.log('ok')"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "css"), 0o755))

	return dir
}

func TestSPA(t *testing.T) {
	t.Parallel()

	handler := New(slogdiscard.NewDiscardLogger(), staticDir(t))

	testCases := []struct {
		name     string
		path     string
		contains string
	}{
		{name: "Root", path: "/", contains: "index"},
		{name: "Existing asset", path: "/script.js", contains: "console.log"},
		{name: "Unknown path falls back", path: "/booking/step-2", contains: "index"},
		{name: "Directory falls back", path: "/css", contains: "index"},
		{name: "Traversal stays inside dir", path: "/../../etc/passwd", contains: "index"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.URL.Path = tc.path
			handler.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.contains)
		})
	}
}

func TestSPAMissingIndex(t *testing.T) {
	t.Parallel()

	handler := New(slogdiscard.NewDiscardLogger(), t.TempDir())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/anything", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
