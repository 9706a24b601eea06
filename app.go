package main

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	labmetrics "gitlab.com/gitlab-org/labkit/metrics"
	"golang.org/x/sync/errgroup"

	"gitlab.com/gitlab-org/pages-gateway/internal/config"
	"gitlab.com/gitlab-org/pages-gateway/internal/file"
	"gitlab.com/gitlab-org/pages-gateway/internal/handlers"
	"gitlab.com/gitlab-org/pages-gateway/internal/healthcheck"
	"gitlab.com/gitlab-org/pages-gateway/internal/httpgateway"
	"gitlab.com/gitlab-org/pages-gateway/internal/logging"
	"gitlab.com/gitlab-org/pages-gateway/internal/middleware"
	"gitlab.com/gitlab-org/pages-gateway/internal/netutil"
	"gitlab.com/gitlab-org/pages-gateway/internal/rejectmethods"
	"gitlab.com/gitlab-org/pages-gateway/internal/router"
	"gitlab.com/gitlab-org/pages-gateway/internal/static"
	"gitlab.com/gitlab-org/pages-gateway/internal/urilimiter"
)

const healthcheckPath = "/-/healthcheck"

// registers its collectors on creation, so there must only be one
var metricsHandlerFactory = labmetrics.NewHandlerFactory(labmetrics.WithNamespace("pages_gateway"))

type theApp struct {
	config *config.Config
}

// buildRoutes turns the configured mounts into router routes, file routes
// first so they win over a static mount covering the same path
func (a *theApp) buildRoutes() ([]router.Route, error) {
	serving := a.config.Serving
	routes := make([]router.Route, 0, len(serving.Files)+len(serving.Static))

	for _, m := range serving.Files {
		h, err := file.New(m.Target,
			file.WithCache(serving.FileCache),
			file.WithExpires(serving.FileExpires),
		)
		if err != nil {
			return nil, fmt.Errorf("file route %q: %w", m.URLPath, err)
		}

		routes = append(routes, router.Route{
			Pattern: router.Literal(regexp.QuoteMeta(m.URLPath)),
			Handler: h,
		})
	}

	for _, m := range serving.Static {
		mount := strings.TrimSuffix(m.URLPath, "/")

		re, err := regexp.Compile("^" + regexp.QuoteMeta(mount) + "(/.*)?$")
		if err != nil {
			return nil, fmt.Errorf("static route %q: %w", m.URLPath, err)
		}

		opts := []static.Option{static.WithExpires(serving.FileExpires)}
		if serving.StaticStrictRoot {
			opts = append(opts, static.WithStrictRoot())
		}

		routes = append(routes, router.Route{
			Pattern: router.Compiled(re),
			Handler: static.New(mount, m.Target, opts...),
		})
	}

	return routes, nil
}

func (a *theApp) buildRouter() (*router.Router, error) {
	customHeaders, err := middleware.ParseHeaderString(a.config.General.CustomHeaders)
	if err != nil {
		return nil, err
	}

	routes, err := a.buildRoutes()
	if err != nil {
		return nil, err
	}

	rt, err := router.New(routes, middleware.CustomHeaders(customHeaders))
	if err != nil {
		return nil, err
	}

	log.WithField("routes", rt.Len()).Info("Routes loaded")

	return rt, nil
}

// httpHandler builds the handler chain of the HTTP listeners. Paths are
// handed to the router untouched, mux must not clean them.
func (a *theApp) httpHandler() (http.Handler, error) {
	rt, err := a.buildRouter()
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter().SkipClean(true)
	r.Handle(healthcheckPath, healthcheck.Handler())
	r.PathPrefix("/").Handler(httpgateway.Handler(rt))

	handler := ghandlers.RecoveryHandler(
		ghandlers.RecoveryLogger(log.StandardLogger()),
		ghandlers.PrintRecoveryStack(true),
	)(r)

	handler = rejectmethods.NewMiddleware(handler)
	handler = urilimiter.NewMiddleware(handler, a.config.General.MaxURILength)
	handler = handlers.CorsHandler(a.config, handler)
	handler = metricsHandlerFactory(handler)

	return logging.BasicAccessLogger(handler, a.config.Log.Format, a.config.General.PropagateCorrelationID)
}

func (a *theApp) metricsHandler() http.Handler {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.Handle(healthcheckPath, healthcheck.Handler())

	return r
}

// Run serves until ctx is done or a listener fails
func (a *theApp) Run(ctx context.Context) error {
	handler, err := a.httpHandler()
	if err != nil {
		return err
	}

	var limiter *netutil.Limiter
	if a.config.General.MaxConns > 0 {
		limiter = netutil.NewLimiter(a.config.General.MaxConns)
	}

	listeners, err := a.createListeners(handler, limiter)
	if err != nil {
		return err
	}

	return a.serveAll(ctx, listeners)
}

func (a *theApp) serveAll(ctx context.Context, listeners []listenerConfig) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, lc := range listeners {
		lc := lc
		g.Go(func() error {
			log.WithFields(log.Fields{
				"listener": lc.listener.Addr().String(),
				"name":     lc.name,
			}).Info("Listening")

			return a.listenAndServe(ctx, lc)
		})
	}

	return g.Wait()
}

func runApp(ctx context.Context, config *config.Config) error {
	a := &theApp{config: config}

	return a.Run(ctx)
}
