package headers

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingHeader is returned by Get when the header was not sent
var ErrMissingHeader = errors.New("missing HTTP header")

const envPrefix = "HTTP_"

// CGI carries these two outside of the HTTP_ namespace
var unprefixed = map[string]string{
	"CONTENT_TYPE":   "content-type",
	"CONTENT_LENGTH": "content-length",
}

// View is a read-only, request scoped view over the request headers found
// in a gateway environment. Names are normalized to lowercase and hyphenated,
// HTTP_IF_NONE_MATCH becomes if-none-match.
type View struct {
	headers map[string]string
}

// New builds a View from all HTTP_* entries in env
func New(env map[string]string) *View {
	h := make(map[string]string)

	for key, value := range env {
		if name, ok := unprefixed[key]; ok {
			h[name] = value
			continue
		}

		if strings.HasPrefix(key, envPrefix) {
			h[normalize(key[len(envPrefix):])] = value
		}
	}

	return &View{headers: h}
}

func normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "_", "-")
}

// Lookup returns the value of the header and whether it was present
func (v *View) Lookup(name string) (string, bool) {
	if v == nil {
		return "", false
	}

	value, ok := v.headers[normalize(name)]
	return value, ok
}

// Get returns the value of the header or ErrMissingHeader if the request
// did not carry it. Callers that can live without the header should use
// GetDefault instead.
func (v *View) Get(name string) (string, error) {
	value, ok := v.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingHeader, name)
	}

	return value, nil
}

// GetDefault returns the value of the header or def if it is absent
func (v *View) GetDefault(name, def string) string {
	if value, ok := v.Lookup(name); ok {
		return value
	}

	return def
}

// Len returns the number of headers in the view
func (v *View) Len() int {
	if v == nil {
		return 0
	}

	return len(v.headers)
}
