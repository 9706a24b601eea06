package router

import (
	"fmt"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"

	"gitlab.com/gitlab-org/pages-gateway/internal/gateway"
	"gitlab.com/gitlab-org/pages-gateway/internal/headers"
	"gitlab.com/gitlab-org/pages-gateway/internal/httperrors"
)

// Middleware wraps a gateway handler
type Middleware = func(gateway.Handler) gateway.Handler

// Pattern is either a literal regular expression that still needs anchoring
// and compiling, or an already compiled one that is used as-is.
type Pattern struct {
	literal  string
	compiled *regexp.Regexp
}

// Literal is a pattern matched against the full request path. `^` and `$`
// are added when missing.
func Literal(expr string) Pattern {
	return Pattern{literal: expr}
}

// Compiled is a pattern used exactly as given, no anchoring is added. Like
// literal patterns it only matches when the match starts at the beginning
// of the path.
func Compiled(re *regexp.Regexp) Pattern {
	return Pattern{compiled: re}
}

func (p Pattern) compile() (*regexp.Regexp, error) {
	if p.compiled != nil {
		return p.compiled, nil
	}

	expr := p.literal
	if !strings.HasPrefix(expr, "^") {
		expr = "^" + expr
	}
	if !strings.HasSuffix(expr, "$") {
		expr += "$"
	}

	return regexp.Compile(expr)
}

func (p Pattern) String() string {
	if p.compiled != nil {
		return p.compiled.String()
	}

	return p.literal
}

// Route pairs a pattern with the handler it dispatches to
type Route struct {
	Pattern Pattern
	Handler gateway.Handler
}

type route struct {
	re      *regexp.Regexp
	handler gateway.Handler
}

// Router dispatches a request to the handler of the first route whose
// pattern matches PATH_INFO. Requests matching no route get a 404.
type Router struct {
	routes   []route
	notFound gateway.Handler
}

// New compiles routes in the given order. The optional middlewares are
// executed in the given order, wrapping every route handler.
func New(routes []Route, middlewares ...Middleware) (*Router, error) {
	r := &Router{
		routes:   make([]route, 0, len(routes)),
		notFound: httperrors.NotFound(""),
	}

	for _, rt := range routes {
		re, err := rt.Pattern.compile()
		if err != nil {
			return nil, fmt.Errorf("compiling route %q: %w", rt.Pattern, err)
		}

		handler := rt.Handler
		for i := len(middlewares) - 1; i >= 0; i-- {
			handler = middlewares[i](handler)
		}

		r.routes = append(r.routes, route{re: re, handler: handler})
	}

	return r, nil
}

// MustNew is like New but panics if a pattern does not compile
func MustNew(routes []Route, middlewares ...Middleware) *Router {
	r, err := New(routes, middlewares...)
	if err != nil {
		panic(err)
	}

	return r
}

// leftmost match semantics make this true whenever any match starts at 0
func matchesFromStart(re *regexp.Regexp, path string) bool {
	loc := re.FindStringIndex(path)
	return loc != nil && loc[0] == 0
}

// Len returns the number of registered routes
func (r *Router) Len() int {
	return len(r.routes)
}

// Serve implements gateway.Handler
func (r *Router) Serve(req *gateway.Request, start gateway.StartResponse) ([]byte, error) {
	if req.Headers == nil {
		req.Headers = headers.New(req.Env)
	}

	path := req.Path()
	for _, rt := range r.routes {
		if matchesFromStart(rt.re, path) {
			return rt.handler.Serve(req, start)
		}
	}

	log.WithField("path", path).Debug("no route matched")

	return r.notFound.Serve(req, start)
}
