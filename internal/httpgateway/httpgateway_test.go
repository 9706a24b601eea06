package httpgateway

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/gitlab-org/pages-gateway/internal/file"
	"gitlab.com/gitlab-org/pages-gateway/internal/gateway"
	"gitlab.com/gitlab-org/pages-gateway/internal/router"
	"gitlab.com/gitlab-org/pages-gateway/internal/static"
)

func TestHandlerServesGatewayResponse(t *testing.T) {
	h := Handler(gateway.HandlerFunc(func(r *gateway.Request, start gateway.StartResponse) ([]byte, error) {
		start("201 Created", []gateway.Header{
			{Name: "Content-Type", Value: "text/plain"},
			{Name: "X-Path", Value: r.Path()},
			{Name: "X-Seen", Value: r.Headers.GetDefault("X-Custom", "none")},
		})
		return []byte("created"), nil
	}))

	req := httptest.NewRequest(http.MethodGet, "http://example.com/things/1", nil)
	req.Header.Set("X-Custom", "yes")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "text/plain", w.Header().Get("Content-Type"))
	require.Equal(t, "/things/1", w.Header().Get("X-Path"))
	require.Equal(t, "yes", w.Header().Get("X-Seen"))
	require.Equal(t, "7", w.Header().Get("Content-Length"))
	require.Equal(t, "created", w.Body.String())
}

func TestHandlerHeadOmitsBody(t *testing.T) {
	h := Handler(gateway.HandlerFunc(func(_ *gateway.Request, start gateway.StartResponse) ([]byte, error) {
		start("200 OK", nil)
		return []byte("body"), nil
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodHead, "http://example.com/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "4", w.Header().Get("Content-Length"))
	require.Empty(t, w.Body.String())
}

func TestHandlerErrors(t *testing.T) {
	tests := map[string]gateway.HandlerFunc{
		"handler_error": func(_ *gateway.Request, _ gateway.StartResponse) ([]byte, error) {
			return nil, errors.New("boom")
		},
		"never_started": func(_ *gateway.Request, _ gateway.StartResponse) ([]byte, error) {
			return []byte("orphan"), nil
		},
		"invalid_status": func(_ *gateway.Request, start gateway.StartResponse) ([]byte, error) {
			start("OK", nil)
			return nil, nil
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			Handler(test).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://example.com/", nil))

			require.Equal(t, http.StatusInternalServerError, w.Code)
			require.Equal(t, "application/json", w.Header().Get("Content-Type"))
			require.JSONEq(t, `{"error":500,"message":"Whoops, something went wrong on our end."}`, w.Body.String())
		})
	}
}

func TestHandlerEndToEnd(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	index := filepath.Join(root, "index.html")
	require.NoError(t, os.WriteFile(index, []byte("<h1>home</h1>"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "css"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "css", "a.css"), []byte("a{}"), 0644))

	indexHandler, err := file.New(index)
	require.NoError(t, err)

	r := router.MustNew([]router.Route{
		{Pattern: router.Literal("/"), Handler: indexHandler},
		{Pattern: router.Literal("/static/.*"), Handler: static.New("/static", root)},
	})
	h := Handler(r)

	t.Run("index", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://example.com/", nil))

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "<h1>home</h1>", w.Body.String())
		require.Equal(t, "max-age=3600", w.Header().Get("Cache-Control"))
		require.NotEmpty(t, w.Header().Get("Last-Modified"))
		require.NotEmpty(t, w.Header().Get("Expires"))
		require.NotEmpty(t, w.Header().Get("Date"))
	})

	t.Run("conditional", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
		req.Header.Set("If-None-Match", indexHandler.ETag())

		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotModified, w.Code)
		require.Empty(t, w.Body.String())
		require.Equal(t, indexHandler.ETag(), w.Header().Get("ETag"))
	})

	t.Run("static", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://example.com/static/css/a.css", nil))

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "a{}", w.Body.String())
		require.Contains(t, w.Header().Get("Content-Type"), "text/css")
	})

	t.Run("not_found", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://example.com/nope", nil))

		require.Equal(t, http.StatusNotFound, w.Code)
		require.Equal(t, "application/json", w.Header().Get("Content-Type"))
		require.JSONEq(t, `{"error":404,"message":"Not found."}`, w.Body.String())
	})

	t.Run("deleted_file", func(t *testing.T) {
		require.NoError(t, os.Remove(index))

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://example.com/", nil))

		require.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
