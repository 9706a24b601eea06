package testhelpers

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// AssertHTTP404 asserts handler returns a 404 JSON error whose message
// contains str
func AssertHTTP404(t *testing.T, handler http.HandlerFunc, url string, str string) {
	t.Helper()

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	handler(w, req)

	require.Equal(t, http.StatusNotFound, w.Code, "HTTP status")

	contentType, _, _ := mime.ParseMediaType(w.Header().Get("Content-Type"))
	require.Equal(t, "application/json", contentType, "Content-Type")

	var body struct {
		Error   int    `json:"error"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, http.StatusNotFound, body.Error)
	require.Contains(t, body.Message, str)
}

// AssertLogContains checks that wantLogEntry is contained in at least one of the log entries
func AssertLogContains(t *testing.T, wantLogEntry string, entries []*logrus.Entry) {
	t.Helper()

	if wantLogEntry != "" {
		messages := make([]string, len(entries))
		for k, entry := range entries {
			messages[k] = entry.Message
		}

		require.Contains(t, messages, wantLogEntry)
	}
}

// Close closes c, failing the test on error
func Close(t *testing.T, c io.Closer) {
	t.Helper()

	require.NoError(t, c.Close())
}

// TmpDir returns a temporary directory with symlinks resolved, on some
// systems `/tmp` is a symlink
func TmpDir(tb testing.TB) string {
	tb.Helper()

	tmpDir, err := filepath.EvalSymlinks(tb.TempDir())
	require.NoError(tb, err)

	return tmpDir
}

// WriteFile creates path with content, including missing parent directories
func WriteFile(tb testing.TB, path, content string) {
	tb.Helper()

	require.NoError(tb, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(tb, os.WriteFile(path, []byte(content), 0644))
}

// Chdir changes the working directory to path until the test ends
func Chdir(tb testing.TB, path string) {
	tb.Helper()

	cwd, err := os.Getwd()
	require.NoError(tb, err, "Cannot Getwd")
	require.NoError(tb, os.Chdir(path), "Cannot Chdir")

	tb.Cleanup(func() {
		require.NoError(tb, os.Chdir(cwd), "Cannot Chdir in cleanup")
	})
}
