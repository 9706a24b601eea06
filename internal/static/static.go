package static

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"gitlab.com/gitlab-org/pages-gateway/internal/file"
	"gitlab.com/gitlab-org/pages-gateway/internal/gateway"
	"gitlab.com/gitlab-org/pages-gateway/internal/httperrors"
	"gitlab.com/gitlab-org/pages-gateway/metrics"
)

// Option configures the static handler
type Option func(*handler)

// WithExpires sets the max-age advertised for every served file
func WithExpires(d time.Duration) Option {
	return func(h *handler) {
		h.expires = d
	}
}

// WithFS replaces the file system files are looked up in
func WithFS(fs file.FS) Option {
	return func(h *handler) {
		h.fs = fs
	}
}

// WithStrictRoot rejects files whose real path, after following symlinks,
// is outside of the root directory
func WithStrictRoot() Option {
	return func(h *handler) {
		h.strictRoot = true
	}
}

type handler struct {
	mount      string
	root       string
	expires    time.Duration
	fs         file.FS
	strictRoot bool
}

// New returns a handler serving files below root for request paths
// containing mount. Files are read from disk on every request.
func New(mount, root string, opts ...Option) gateway.Handler {
	h := &handler{
		mount:   mount,
		root:    root,
		expires: file.DefaultExpires,
		fs:      file.DefaultFS,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// ResolvePath maps a request path onto root. Everything up to and including
// the first occurrence of mount is dropped, then any leading '.' and '/',
// then every ".." substring. It reports false when urlPath doesn't contain
// mount.
func ResolvePath(mount, root, urlPath string) (string, bool) {
	i := strings.Index(urlPath, mount)
	if i < 0 {
		return "", false
	}

	path := urlPath[i+len(mount):]
	for strings.HasPrefix(path, ".") || strings.HasPrefix(path, "/") {
		path = path[1:]
	}

	// no going up a directory
	path = strings.ReplaceAll(path, "..", "")

	fullPath, err := filepath.Abs(filepath.Join(root, path))
	if err != nil {
		return "", false
	}

	return fullPath, true
}

// Resolve symlinks and make sure the file is still inside root
func containedIn(root, fullPath string) (string, bool) {
	realRoot, err := filepath.Abs(root)
	if err != nil {
		return "", false
	}

	realRoot, err = filepath.EvalSymlinks(realRoot)
	if err != nil {
		return "", false
	}

	realPath, err := filepath.EvalSymlinks(fullPath)
	if err != nil {
		return "", false
	}

	if !strings.HasPrefix(realPath, strings.TrimSuffix(realRoot, "/")+"/") {
		return "", false
	}

	return realPath, true
}

func (h *handler) notFound(r *gateway.Request, start gateway.StartResponse, path string) ([]byte, error) {
	metrics.StaticNotFound.Inc()

	log.WithFields(log.Fields{
		"path":      r.Path(),
		"full_path": path,
	}).Debug("static file not found")

	return httperrors.NotFound(fmt.Sprintf("Path %s not found.", path)).Serve(r, start)
}

// Serve implements gateway.Handler
func (h *handler) Serve(r *gateway.Request, start gateway.StartResponse) ([]byte, error) {
	fullPath, ok := ResolvePath(h.mount, h.root, r.Path())
	if !ok {
		return h.notFound(r, start, r.Path())
	}

	if h.strictRoot {
		realPath, ok := containedIn(h.root, fullPath)
		if !ok {
			return h.notFound(r, start, fullPath)
		}

		fullPath = realPath
	}

	fi, err := h.fs.Stat(fullPath)
	if err != nil || !fi.Regular {
		return h.notFound(r, start, fullPath)
	}

	f, err := file.New(fullPath, file.WithCache(false), file.WithExpires(h.expires), file.WithFS(h.fs))
	if err != nil {
		return nil, err
	}

	return f.Serve(r, start)
}
