package file

import (
	"net/http"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"gitlab.com/gitlab-org/pages-gateway/internal/gateway"
	"gitlab.com/gitlab-org/pages-gateway/metrics"
)

// DefaultExpires is the max-age advertised when WithExpires is not used
const DefaultExpires = time.Hour

// Option configures a Handler
type Option func(*Handler)

// WithCache toggles keeping the file content in memory between requests.
// Disabled, every 200 response reads the file again.
func WithCache(enabled bool) Option {
	return func(h *Handler) {
		h.useCache = enabled
	}
}

// WithExpires sets the duration advertised in Cache-Control and Expires
func WithExpires(d time.Duration) Option {
	return func(h *Handler) {
		h.expires = d
	}
}

// WithFS replaces the file system the handler reads from
func WithFS(fs FS) Option {
	return func(h *Handler) {
		h.fs = fs
	}
}

// WithClock replaces the clock used for the Date and Expires headers
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		h.now = now
	}
}

// cache is the state kept between requests. content is never mutated in
// place, a reload swaps in a new slice.
type cache struct {
	content     []byte
	loaded      bool
	modTime     time.Time
	etag        string
	contentType string
}

func (c *cache) needsRefresh(enabled bool, modTime time.Time) bool {
	return !enabled || !c.loaded || modTime.After(c.modTime)
}

// Handler serves a single file with caching headers and answers conditional
// requests carrying the current entity tag with 304 Not Modified.
//
// Concurrent requests that find the cache stale all read the file; the last
// one to finish wins. Reads of the same modification time yield the same
// bytes, so no request observes torn state.
type Handler struct {
	path     string
	useCache bool
	expires  time.Duration
	fs       FS
	now      func() time.Time

	mu    sync.Mutex
	cache cache
}

// New resolves path to an absolute path and records its modification time,
// entity tag and content type. A missing file is an error.
func New(path string, opts ...Option) (*Handler, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	h := &Handler{
		path:     absPath,
		useCache: true,
		expires:  DefaultExpires,
		fs:       DefaultFS,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(h)
	}

	fi, err := h.fs.Stat(h.path)
	if err != nil {
		return nil, err
	}

	h.cache = cache{
		modTime:     fi.ModTime,
		etag:        entityTag(fi),
		contentType: contentTypeByName(h.path),
	}

	return h, nil
}

// Path returns the absolute path served by h
func (h *Handler) Path() string {
	return h.path
}

// ETag returns the current entity tag
func (h *Handler) ETag() string {
	return h.snapshot().etag
}

func (h *Handler) snapshot() cache {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.cache
}

func (h *Handler) store(c cache) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.cache = c
}

func (h *Handler) responseHeaders(now time.Time, c cache) []gateway.Header {
	return []gateway.Header{
		{Name: "Cache-Control", Value: "max-age=" + strconv.FormatInt(int64(h.expires/time.Second), 10)},
		{Name: "Date", Value: formatDate(now)},
		{Name: "Expires", Value: formatDate(now.Add(h.expires))},
		{Name: "Last-Modified", Value: formatDate(c.modTime)},
		{Name: "ETag", Value: c.etag},
	}
}

// reload reads the file and refreshes everything derived from it
func (h *Handler) reload(c cache, fi FileInfo) (cache, error) {
	content, err := h.fs.ReadFile(h.path)
	if err != nil {
		return c, err
	}

	metrics.FileSize.Observe(float64(len(content)))

	c.content = content
	c.loaded = true
	c.modTime = fi.ModTime
	c.etag = entityTag(fi)
	if contentType := contentTypeByName(h.path); contentType != "" {
		c.contentType = contentType
	} else {
		c.contentType = detectContentType(content)
	}

	log.WithFields(log.Fields{
		"path": h.path,
		"size": len(content),
	}).Debug("file loaded")

	return c, nil
}

// Serve implements gateway.Handler. File system errors are returned to the
// caller untouched.
func (h *Handler) Serve(r *gateway.Request, start gateway.StartResponse) ([]byte, error) {
	now := h.now()
	c := h.snapshot()

	if etag, ok := r.Headers.Lookup("If-None-Match"); ok && etag == c.etag {
		metrics.FileServedTotal.WithLabelValues("not_modified").Inc()
		start(gateway.StatusLine(http.StatusNotModified), h.responseHeaders(now, c))
		return []byte{}, nil
	}

	fi, err := h.fs.Stat(h.path)
	if err != nil {
		return nil, err
	}

	if c.needsRefresh(h.useCache, fi.ModTime) {
		metrics.FileCacheRequests.WithLabelValues("miss").Inc()

		c, err = h.reload(c, fi)
		if err != nil {
			return nil, err
		}

		h.store(c)
	} else {
		metrics.FileCacheRequests.WithLabelValues("hit").Inc()
	}

	headers := append(h.responseHeaders(now, c), gateway.Header{Name: "Content-Type", Value: c.contentType})

	metrics.FileServedTotal.WithLabelValues("ok").Inc()
	start(gateway.StatusLine(http.StatusOK), headers)

	return c.content, nil
}
