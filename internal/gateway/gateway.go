package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"gitlab.com/gitlab-org/pages-gateway/internal/headers"
)

// Well known environment keys
const (
	RequestMethod  = "REQUEST_METHOD"
	PathInfo       = "PATH_INFO"
	QueryString    = "QUERY_STRING"
	ServerProtocol = "SERVER_PROTOCOL"
	RemoteAddr     = "REMOTE_ADDR"
	ContentType    = "CONTENT_TYPE"
	ContentLength  = "CONTENT_LENGTH"
)

var errInvalidStatus = errors.New("invalid status line")

// Environ is the CGI-style environment handed to a Handler for a single request.
type Environ map[string]string

// Path returns the path component of the request
func (e Environ) Path() string {
	return e[PathInfo]
}

// Header is a single response header
type Header struct {
	Name  string
	Value string
}

// StartResponse is called by a Handler exactly once, before returning the body.
type StartResponse func(status string, headers []Header)

// Request is the request context passed to every Handler.
type Request struct {
	Env     Environ
	Headers *headers.View
	ctx     context.Context
}

// NewRequest wraps env into a Request and derives its header view once.
func NewRequest(ctx context.Context, env Environ) *Request {
	if ctx == nil {
		ctx = context.Background()
	}

	return &Request{
		Env:     env,
		Headers: headers.New(env),
		ctx:     ctx,
	}
}

// Context returns the request's context
func (r *Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}

	return r.ctx
}

// Path returns the request's PATH_INFO
func (r *Request) Path() string {
	return r.Env.Path()
}

// Handler answers a single request. The full response body is returned as
// one unit once StartResponse has been called.
type Handler interface {
	Serve(r *Request, start StartResponse) ([]byte, error)
}

// HandlerFunc is an adapter to allow the use of ordinary functions as Handler.
type HandlerFunc func(r *Request, start StartResponse) ([]byte, error)

// Serve calls f(r, start)
func (f HandlerFunc) Serve(r *Request, start StartResponse) ([]byte, error) {
	return f(r, start)
}

// NewEnviron translates a net/http request into a gateway environment
func NewEnviron(r *http.Request) Environ {
	env := Environ{
		RequestMethod:  r.Method,
		PathInfo:       r.URL.Path,
		QueryString:    r.URL.RawQuery,
		ServerProtocol: r.Proto,
		RemoteAddr:     r.RemoteAddr,
	}

	if ct := r.Header.Get("Content-Type"); ct != "" {
		env[ContentType] = ct
	}

	if r.ContentLength > 0 {
		env[ContentLength] = strconv.FormatInt(r.ContentLength, 10)
	}

	if r.Host != "" {
		env["HTTP_HOST"] = r.Host
	}

	for name, values := range r.Header {
		key := "HTTP_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
		if key == "HTTP_CONTENT_TYPE" || key == "HTTP_CONTENT_LENGTH" {
			continue
		}

		env[key] = strings.Join(values, ",")
	}

	return env
}

// StatusLine formats a status code into a status line, e.g. "404 Not Found"
func StatusLine(code int) string {
	return fmt.Sprintf("%d %s", code, http.StatusText(code))
}

// ParseStatus extracts the status code from a status line
func ParseStatus(status string) (int, error) {
	codeStr := status
	if i := strings.IndexByte(status, ' '); i >= 0 {
		codeStr = status[:i]
	}

	code, err := strconv.Atoi(codeStr)
	if err != nil || code < 100 || code > 999 {
		return 0, fmt.Errorf("%w: %q", errInvalidStatus, status)
	}

	return code, nil
}
